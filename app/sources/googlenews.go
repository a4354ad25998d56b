package sources

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"paypal-digest/app/news"
)

// GoogleNews reads the Google News search feed for the subject query. The
// feed needs no credential; descriptions arrive as HTML fragments and are
// stripped to plain text before they become summary hints.
type GoogleNews struct {
	client    *http.Client
	feedURL   string
	userAgent string
	maxItems  int
	parser    *gofeed.Parser
	policy    *bluemonday.Policy
}

func NewGoogleNews(client *http.Client, feedURL, userAgent, query string, maxItems int) *GoogleNews {
	if feedURL == "" {
		feedURL = googleNewsFeedURL(query)
	}
	return &GoogleNews{
		client:    client,
		feedURL:   feedURL,
		userAgent: userAgent,
		maxItems:  maxItems,
		parser:    gofeed.NewParser(),
		policy:    bluemonday.StrictPolicy(),
	}
}

func googleNewsFeedURL(query string) string {
	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	params.Set("q", query)
	return "https://news.google.com/rss/search?" + params.Encode()
}

func (s *GoogleNews) Name() string {
	return "google_news"
}

func (s *GoogleNews) Fetch(ctx context.Context) ([]news.Item, error) {
	data, err := fetch(ctx, s.client, s.feedURL, s.userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]news.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		item := news.Item{
			ID:          news.Identity(s.Name(), entry.Link),
			Title:       entry.Title,
			URL:         entry.Link,
			SourceName:  "Google News",
			SummaryHint: s.stripHTML(entry.Description),
		}

		if entry.PublishedParsed != nil {
			item.PublishedAt = entry.PublishedParsed.UTC()
		} else if entry.Published != "" {
			if ts, err := dateparse.ParseAny(entry.Published); err == nil {
				item.PublishedAt = ts.UTC()
			}
		}

		items = append(items, item)
		if len(items) >= s.maxItems {
			break
		}
	}

	return items, nil
}

func (s *GoogleNews) stripHTML(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(fragment)))
}
