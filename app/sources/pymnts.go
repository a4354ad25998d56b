package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"paypal-digest/app/news"
)

// PYMNTS scrapes the pymnts.com company listing page, which has no feed.
// Selection follows the page structure: each story is an article.post with
// a linked h2 headline, an excerpt block, and a time element.
type PYMNTS struct {
	client     *http.Client
	listingURL string
	userAgent  string
	maxItems   int
}

func NewPYMNTS(client *http.Client, listingURL, userAgent string, maxItems int) *PYMNTS {
	return &PYMNTS{
		client:     client,
		listingURL: listingURL,
		userAgent:  userAgent,
		maxItems:   maxItems,
	}
}

func (s *PYMNTS) Name() string {
	return "pymnts"
}

func (s *PYMNTS) Fetch(ctx context.Context) ([]news.Item, error) {
	data, err := fetch(ctx, s.client, s.listingURL, s.userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var items []news.Item
	doc.Find("article.post").EachWithBreak(func(_ int, post *goquery.Selection) bool {
		headline := post.Find("h2.entry-title a").First()
		title := strings.TrimSpace(headline.Text())
		href, _ := headline.Attr("href")
		if title == "" || href == "" {
			return true
		}

		item := news.Item{
			ID:          news.Identity(s.Name(), href),
			Title:       title,
			URL:         href,
			SourceName:  "PYMNTS",
			SummaryHint: strings.TrimSpace(post.Find("div.entry-excerpt p").First().Text()),
		}

		if raw, ok := post.Find("time[datetime]").First().Attr("datetime"); ok {
			if ts, err := dateparse.ParseAny(raw); err == nil {
				item.PublishedAt = ts.UTC()
			}
		}

		items = append(items, item)
		return len(items) < s.maxItems
	})

	return items, nil
}
