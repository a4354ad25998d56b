package digest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Markdown renders the digest as a flat document: one dated heading, then
// one section per entry with title, source, publish time, summary, and a
// trailing link.
func (d *Digest) Markdown() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s Daily Digest — %s\n\n", d.Subject, d.Date.Format("2006-01-02"))

	for _, entry := range d.Entries {
		fmt.Fprintf(&buf, "## %s\n", entry.Title)
		fmt.Fprintf(&buf, "*Source:* %s — *Published:* %s\n\n", entry.SourceName, formatPublished(entry.PublishedAt))
		fmt.Fprintf(&buf, "%s\n\n", entry.Summary)
		fmt.Fprintf(&buf, "[Read more](%s)\n\n", entry.URL)
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func formatPublished(ts time.Time) string {
	if ts.IsZero() {
		return "Unknown"
	}
	return ts.Format("2006-01-02 15:04")
}

// Filename returns the dated file name for the digest, derived from the
// subject slug and the run date.
func (d *Digest) Filename() string {
	return fmt.Sprintf("%s-digest-%s.md", d.Slug, d.Date.Format("2006-01-02"))
}

// WriteFile renders the digest to path, creating parent directories as
// needed.
func (d *Digest) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create digest directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(d.Markdown()), 0644); err != nil {
		return fmt.Errorf("failed to write digest file: %w", err)
	}

	return nil
}
