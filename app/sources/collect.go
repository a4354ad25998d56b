package sources

import (
	"context"
	"log/slog"
	"sync"

	"paypal-digest/app/news"
	"paypal-digest/app/subject"
)

// Stats counts what happened to the fetched items before they reached the
// digest stage.
type Stats struct {
	Total      int
	Duplicates int
	Filtered   int
}

// Collector fans out to all registered sources and folds their output into
// one deduplicated, relevance-filtered batch.
type Collector struct {
	sources []Source
	sub     subject.Subject
}

func NewCollector(sub subject.Subject, srcs ...Source) *Collector {
	return &Collector{
		sources: srcs,
		sub:     sub,
	}
}

// Collect fetches every source concurrently, each into its own slot, and
// merges the slots in registration order. The first-seen-wins tie-break
// therefore depends only on registration order, never on completion order.
// A failing source contributes nothing; the others are unaffected.
func (c *Collector) Collect(ctx context.Context) ([]news.Item, Stats) {
	results := make([][]news.Item, len(c.sources))

	var wg sync.WaitGroup
	for i, src := range c.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			items, err := src.Fetch(ctx)
			if err != nil {
				slog.Error("Failed to fetch source", "source", src.Name(), "error", err)
				return
			}
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	var stats Stats
	seen := make(map[string]bool)
	var collected []news.Item

	for i, items := range results {
		slog.Debug("Source fetched", "source", c.sources[i].Name(), "items", len(items))

		for _, item := range items {
			stats.Total++

			if !item.Valid() {
				continue
			}
			if seen[item.ID] {
				stats.Duplicates++
				continue
			}
			if !c.sub.Matches(item.Title + " " + item.SummaryHint) {
				slog.Debug("Skipping irrelevant item", "source", c.sources[i].Name(), "title", item.Title)
				stats.Filtered++
				continue
			}

			seen[item.ID] = true
			collected = append(collected, item)
		}
	}

	return collected, stats
}
