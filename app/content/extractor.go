package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	readability "codeberg.org/readeck/go-readability"

	"paypal-digest/app/news"
)

// Extractor retrieves the fullest text available for an item. It is strict
// best-effort: every failure path degrades to whatever text the source
// already supplied, never to an error.
type Extractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

func NewExtractor(client *http.Client, userAgent string, maxChars int) *Extractor {
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

// BestText returns the body as delivered by the source when present, the
// readable text extracted from the item's URL otherwise, and the summary
// hint when extraction fails or finds nothing. Extracted text is capped at
// maxChars as a silent prefix cut.
func (e *Extractor) BestText(ctx context.Context, item news.Item) string {
	if item.Body != "" {
		return item.Body
	}

	text, err := e.extract(ctx, item.URL)
	if err != nil {
		slog.Debug("Content extraction failed, falling back to summary hint", "url", item.URL, "error", err)
		return item.SummaryHint
	}

	return text
}

func (e *Extractor) extract(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("item has no URL")
	}

	data, err := e.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable text extracted")
	}

	if runes := []rune(text); len(runes) > e.maxChars {
		text = string(runes[:e.maxChars])
	}

	slog.Debug("Content extracted successfully", "url", pageURL, "content_length", len(text))

	return text, nil
}

func (e *Extractor) fetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
