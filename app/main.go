package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"paypal-digest/app/cfg"
	"paypal-digest/app/content"
	"paypal-digest/app/digest"
	"paypal-digest/app/sources"
	"paypal-digest/app/state"
	"paypal-digest/app/subject"
	"paypal-digest/app/summary"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting paypal-digest", "version", appCfg.Version)

	sub, err := subject.Load(appCfg.SubjectFile)
	if err != nil {
		slog.Error("Failed to load subject configuration", "file", appCfg.SubjectFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Subject configured", "subject", sub.Subject.Name, "keywords", sub.Subject.Keywords)

	client := &http.Client{Timeout: time.Duration(appCfg.Timeout) * time.Second}

	collector := sources.NewCollector(sub.Subject, buildSources(appCfg, sub, client)...)
	extractor := content.NewExtractor(client, appCfg.UserAgent, sub.Enrich.MaxChars)
	summarizer := summary.NewSummarizer(sub.Summary.Sentences)

	run := func(ctx context.Context) error {
		return runOnce(ctx, appCfg, sub, collector, extractor, summarizer)
	}

	if appCfg.Schedule == "" {
		if err := run(context.Background()); err != nil {
			slog.Error("Run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New()
	if _, err := c.AddFunc(appCfg.Schedule, func() {
		if err := run(ctx); err != nil {
			slog.Error("Scheduled run failed", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to set up schedule", "schedule", appCfg.Schedule, "error", err)
		os.Exit(1)
	}
	c.Start()
	slog.Info("Scheduled digest runs", "schedule", appCfg.Schedule)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Received signal, shutting down", "signal", sig.String())

	cancel()
	c.Stop()
}

// runOnce reloads run state from disk so a long-running scheduled process
// picks up external changes between runs.
func runOnce(ctx context.Context, appCfg *cfg.Cfg, sub *subject.Config, collector *sources.Collector, extractor *content.Extractor, summarizer *summary.Summarizer) error {
	store := state.NewStore(appCfg.StateFile)
	builder := digest.NewBuilder(collector, store, extractor, summarizer, sub.Subject)

	d, err := builder.Run(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	return publishDigest(appCfg, d)
}

// publishDigest writes the rendered digest to the digest directory, to the
// optional output copy, and to stdout. An empty digest writes no files.
func publishDigest(appCfg *cfg.Cfg, d *digest.Digest) error {
	if len(d.Entries) == 0 {
		slog.Warn("No new items, skipping digest", "subject", d.Subject)
		return nil
	}

	path := filepath.Join(appCfg.DigestDir, d.Filename())
	if err := d.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	slog.Info("Digest written", "path", path, "entries", len(d.Entries))

	if appCfg.Output != "" {
		if err := d.WriteFile(appCfg.Output); err != nil {
			return fmt.Errorf("failed to write digest copy: %w", err)
		}
		slog.Info("Digest copy written", "path", appCfg.Output)
	}

	fmt.Print(d.Markdown())

	return nil
}

func buildSources(appCfg *cfg.Cfg, sub *subject.Config, client *http.Client) []sources.Source {
	var srcs []sources.Source

	if sub.Sources.NewsAPI.Enabled {
		srcs = append(srcs, sources.NewNewsAPI(client, appCfg.NewsAPIKey, appCfg.UserAgent,
			sub.Subject.Query, sub.Subject.Language, sub.Sources.NewsAPI.PageSize))
	}
	if sub.Sources.GoogleNews.Enabled {
		srcs = append(srcs, sources.NewGoogleNews(client, sub.Sources.GoogleNews.FeedURL,
			appCfg.UserAgent, sub.Subject.Query, sub.Limits.MaxItems))
	}
	if sub.Sources.PYMNTS.Enabled {
		srcs = append(srcs, sources.NewPYMNTS(client, sub.Sources.PYMNTS.ListingURL,
			appCfg.UserAgent, sub.Limits.MaxItems))
	}

	return srcs
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
