package digest

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"paypal-digest/app/content"
	"paypal-digest/app/news"
	"paypal-digest/app/sources"
	"paypal-digest/app/state"
	"paypal-digest/app/subject"
	"paypal-digest/app/summary"
)

type stubCollector struct {
	items []news.Item
	stats sources.Stats
}

func (c *stubCollector) Collect(ctx context.Context) ([]news.Item, sources.Stats) {
	return c.items, c.stats
}

func newTestBuilder(statePath string, items []news.Item) *Builder {
	return NewBuilder(
		&stubCollector{items: items},
		state.NewStore(statePath),
		content.NewExtractor(http.DefaultClient, "test-agent", 2000),
		summary.NewSummarizer(3),
		subject.Subject{Name: "PayPal", Keywords: []string{"paypal", "pypl"}},
	)
}

func testItem(origin, title, url string, published time.Time) news.Item {
	return news.Item{
		ID:          news.Identity(origin, url),
		Title:       title,
		URL:         url,
		SourceName:  origin,
		PublishedAt: published,
		Body:        "PayPal reported strong quarterly results. Checkout volumes grew quickly across regions. Margins improved as well.",
	}
}

func TestBuilderOrdersByPublishedAt(t *testing.T) {
	base := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	items := []news.Item{
		testItem("newsapi", "Item A", "https://example.com/a", base),
		testItem("newsapi", "Item B", "https://example.com/b", time.Time{}),
		testItem("newsapi", "Item C", "https://example.com/c", base.AddDate(0, 0, -1)),
	}

	builder := newTestBuilder(filepath.Join(t.TempDir(), "state.json"), items)

	d, err := builder.Run(context.Background(), base)
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(d.Entries))
	}

	got := []string{d.Entries[0].Title, d.Entries[1].Title, d.Entries[2].Title}
	expected := []string{"Item A", "Item C", "Item B"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected order %v, got %v", expected, got)
			break
		}
	}
}

func TestBuilderCrossRunIdempotence(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	items := []news.Item{
		testItem("newsapi", "PayPal item", "https://example.com/a", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	first, err := newTestBuilder(statePath, items).Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Entries) != 1 {
		t.Fatalf("Expected 1 entry on first run, got %d", len(first.Entries))
	}

	stateAfterFirst, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}

	// Second run with an unchanged history and unchanged source output.
	second, err := newTestBuilder(statePath, items).Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Entries) != 0 {
		t.Errorf("Expected 0 entries on second run, got %d", len(second.Entries))
	}

	stateAfterSecond, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(stateAfterFirst) != string(stateAfterSecond) {
		t.Error("Expected state file unchanged after an empty run")
	}
}

func TestBuilderEmptyRunWritesNoState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	d, err := newTestBuilder(statePath, nil).Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Entries) != 0 {
		t.Errorf("Expected empty digest, got %d entries", len(d.Entries))
	}
	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Error("Expected no state file after a run with zero new items")
	}
}

func TestBuilderSkipsItemsWithoutText(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	noText := news.Item{
		ID:    news.Identity("newsapi", "https://example.com/empty"),
		Title: "PayPal item without any text",
		URL:   "",
	}
	withText := testItem("newsapi", "PayPal item with text", "https://example.com/full", time.Now().UTC())

	d, err := newTestBuilder(statePath, []news.Item{noText, withText}).Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(d.Entries))
	}
	if d.Entries[0].Title != "PayPal item with text" {
		t.Errorf("Expected only the item with text, got '%s'", d.Entries[0].Title)
	}

	// The skipped item is not marked seen, so a later run can retry it.
	reloaded := state.NewStore(statePath)
	if reloaded.Contains(noText.ID) {
		t.Error("Expected skipped item to stay unrecorded")
	}
	if !reloaded.Contains(withText.ID) {
		t.Error("Expected published item to be recorded")
	}
}

func TestBuilderRecordsTitles(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	item := testItem("pymnts", "PayPal Expands BNPL", "https://www.pymnts.com/a", time.Now().UTC())

	if _, err := newTestBuilder(statePath, []news.Item{item}).Run(context.Background(), time.Now().UTC()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "PayPal Expands BNPL") {
		t.Errorf("Expected last seen title in state document, got: %s", data)
	}
}

func TestBuilderSummarizesBody(t *testing.T) {
	item := testItem("newsapi", "PayPal item", "https://example.com/a", time.Now().UTC())

	d, err := newTestBuilder(filepath.Join(t.TempDir(), "state.json"), []news.Item{item}).Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(d.Entries))
	}
	if d.Entries[0].Summary == "" {
		t.Error("Expected non-empty summary")
	}
	if !strings.Contains(d.Entries[0].Summary, "PayPal") {
		t.Errorf("Expected summary drawn from body text, got '%s'", d.Entries[0].Summary)
	}
}
