package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store holds the identities of items already published in past digests,
// backed by a flat JSON document mapping identity to the last seen title.
// The document is read fully on construction and rewritten wholesale by
// Save; there is no incremental write.
type Store struct {
	path string
	seen map[string]string
}

// NewStore loads the document at path. A missing file means a cold start
// with an empty history. An unreadable or corrupt file degrades to an
// empty history as well: the only consequence is re-surfacing already seen
// items, which is preferable to failing the run.
func NewStore(path string) *Store {
	s := &Store{
		path: path,
		seen: make(map[string]string),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read state file, starting with empty history", "path", s.path, "error", err)
		}
		return
	}

	if err := json.Unmarshal(data, &s.seen); err != nil {
		slog.Warn("State file is corrupt, starting with empty history", "path", s.path, "error", err)
		s.seen = make(map[string]string)
		return
	}

	// A document holding JSON null decodes into a nil map without an error;
	// Record would then panic on the first write.
	if s.seen == nil {
		slog.Warn("State file is corrupt, starting with empty history", "path", s.path)
		s.seen = make(map[string]string)
	}
}

func (s *Store) Contains(id string) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *Store) Record(id, title string) {
	s.seen[id] = title
}

func (s *Store) Len() int {
	return len(s.seen)
}

// Save overwrites the state file with the full history. Map keys marshal
// in sorted order, so consecutive runs produce diffable documents.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.seen, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}
