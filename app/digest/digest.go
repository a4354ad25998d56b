package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"paypal-digest/app/content"
	"paypal-digest/app/news"
	"paypal-digest/app/sources"
	"paypal-digest/app/state"
	"paypal-digest/app/subject"
	"paypal-digest/app/summary"
)

// Entry is one rendered story in a digest.
type Entry struct {
	Title       string
	SourceName  string
	URL         string
	PublishedAt time.Time
	Summary     string
}

// Digest is the terminal result of one run.
type Digest struct {
	Subject string
	Slug    string
	Date    time.Time
	Entries []Entry
}

// Collector yields the deduplicated, relevance-filtered batch for one run.
type Collector interface {
	Collect(ctx context.Context) ([]news.Item, sources.Stats)
}

// Builder drives one digest pass: collect, subtract history, order, enrich,
// summarize, and commit the identities that made it into the digest.
type Builder struct {
	collector  Collector
	store      *state.Store
	extractor  *content.Extractor
	summarizer *summary.Summarizer
	sub        subject.Subject
}

func NewBuilder(collector Collector, store *state.Store, extractor *content.Extractor, summarizer *summary.Summarizer, sub subject.Subject) *Builder {
	return &Builder{
		collector:  collector,
		store:      store,
		extractor:  extractor,
		summarizer: summarizer,
		sub:        sub,
	}
}

// Run builds the digest for runDate. History is written exactly once,
// after every item has been evaluated, and only when at least one entry was
// produced; a run yielding nothing leaves the state file untouched. Items
// for which no text at all could be found are skipped without being marked
// seen, so a later run can pick them up again.
func (b *Builder) Run(ctx context.Context, runDate time.Time) (*Digest, error) {
	items, stats := b.collector.Collect(ctx)

	fresh := make([]news.Item, 0, len(items))
	for _, item := range items {
		if b.store.Contains(item.ID) {
			continue
		}
		fresh = append(fresh, item)
	}
	seenCount := len(items) - len(fresh)

	// Newest first; the zero time sorts last, so items with an unknown
	// publish time close the digest instead of leading it.
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].PublishedAt.After(fresh[j].PublishedAt)
	})

	d := &Digest{
		Subject: b.sub.Name,
		Slug:    b.sub.Slug(),
		Date:    runDate,
	}

	skipped := 0
	for _, item := range fresh {
		text := strings.TrimSpace(b.extractor.BestText(ctx, item))
		if text == "" {
			slog.Debug("Skipping item with no usable text", "title", item.Title, "url", item.URL)
			skipped++
			continue
		}

		d.Entries = append(d.Entries, Entry{
			Title:       item.Title,
			SourceName:  item.SourceName,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
			Summary:     b.summarizer.Summarize(text),
		})
		b.store.Record(item.ID, item.Title)
	}

	if len(d.Entries) > 0 {
		if err := b.store.Save(); err != nil {
			return nil, fmt.Errorf("failed to persist history: %w", err)
		}
	}

	slog.Info("Run completed",
		"subject", b.sub.Name,
		"total", stats.Total,
		"duplicates", stats.Duplicates,
		"filtered", stats.Filtered,
		"seen", seenCount,
		"skipped", skipped,
		"new", len(d.Entries))

	return d, nil
}
