package sources

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/araddon/dateparse"

	"paypal-digest/app/news"
)

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsAPI queries the newsapi.org "everything" search endpoint. Without an
// API key the source degrades to zero items instead of failing the run.
type NewsAPI struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	userAgent string
	query     string
	language  string
	pageSize  int
}

func NewNewsAPI(client *http.Client, apiKey, userAgent, query, language string, pageSize int) *NewsAPI {
	return &NewsAPI{
		client:    client,
		baseURL:   newsAPIEndpoint,
		apiKey:    apiKey,
		userAgent: userAgent,
		query:     query,
		language:  language,
		pageSize:  pageSize,
	}
}

func (s *NewsAPI) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func (s *NewsAPI) Fetch(ctx context.Context) ([]news.Item, error) {
	if s.apiKey == "" {
		slog.Warn("NewsAPI key is not configured, skipping source", "source", s.Name())
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", s.query)
	params.Set("language", s.language)
	params.Set("pageSize", strconv.Itoa(s.pageSize))
	params.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]news.Item, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		if article.Title == "" || article.URL == "" {
			continue
		}

		item := news.Item{
			ID:          news.Identity(s.Name(), article.URL),
			Title:       article.Title,
			URL:         article.URL,
			SourceName:  cmp.Or(article.Source.Name, "NewsAPI"),
			SummaryHint: article.Description,
			Body:        article.Content,
			Author:      article.Author,
		}

		if article.PublishedAt != "" {
			if ts, err := dateparse.ParseAny(article.PublishedAt); err == nil {
				item.PublishedAt = ts.UTC()
			}
		}

		items = append(items, item)
		if len(items) >= s.pageSize {
			break
		}
	}

	return items, nil
}
