package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"paypal-digest/app/news"
)

// Source produces normalized items from one origin. Adding an origin means
// adding an implementation; the collector never branches on concrete types.
// A returned error stands for "zero items from this origin": the collector
// logs it and keeps going, it never stops the run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]news.Item, error)
}

func fetch(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
