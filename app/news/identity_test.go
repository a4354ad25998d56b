package news

import (
	"testing"
	"time"
)

func TestIdentityDeterministic(t *testing.T) {
	first := Identity("newsapi", "https://example.com/paypal-earnings")
	second := Identity("newsapi", "https://example.com/paypal-earnings")

	if first != second {
		t.Errorf("Expected identical identities, got '%s' and '%s'", first, second)
	}
}

func TestIdentityIsHexDigest(t *testing.T) {
	id := Identity("newsapi", "https://example.com/article")

	if len(id) != 64 {
		t.Errorf("Expected 64 character digest, got %d", len(id))
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("Expected lowercase hex digest, got character '%c'", c)
		}
	}
}

func TestIdentityScopedByOrigin(t *testing.T) {
	url := "https://example.com/paypal-earnings"

	fromAPI := Identity("newsapi", url)
	fromFeed := Identity("google_news", url)

	if fromAPI == fromFeed {
		t.Error("Expected different origins to yield different identities for the same URL")
	}
}

func TestIdentityChangesWithURL(t *testing.T) {
	first := Identity("pymnts", "https://www.pymnts.com/a")
	second := Identity("pymnts", "https://www.pymnts.com/b")

	if first == second {
		t.Error("Expected different URLs to yield different identities")
	}
}

func TestIdentityNoCollisionsAcrossSample(t *testing.T) {
	origins := []string{"newsapi", "google_news", "pymnts", "news", "api"}
	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/a/b",
		"https://example.com/a?b=c",
		"https://example.org/a",
	}

	seen := make(map[string]string)
	for _, origin := range origins {
		for _, url := range urls {
			id := Identity(origin, url)
			key := origin + " " + url
			if prev, ok := seen[id]; ok {
				t.Errorf("Identity collision between '%s' and '%s'", prev, key)
			}
			seen[id] = key
		}
	}
}

func TestItemValid(t *testing.T) {
	item := Item{Title: "PayPal expands checkout", URL: "https://example.com/a"}
	if !item.Valid() {
		t.Error("Expected item with title and URL to be valid")
	}

	if (Item{URL: "https://example.com/a"}).Valid() {
		t.Error("Expected item without title to be invalid")
	}
	if (Item{Title: "PayPal expands checkout"}).Valid() {
		t.Error("Expected item without URL to be invalid")
	}
}

func TestItemZeroPublishedAtMeansUnknown(t *testing.T) {
	item := Item{Title: "t", URL: "u"}
	if !item.PublishedAt.IsZero() {
		t.Errorf("Expected zero timestamp for unknown publish time, got %v", item.PublishedAt)
	}

	item.PublishedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if item.PublishedAt.IsZero() {
		t.Error("Expected explicit timestamp to be non-zero")
	}
}
