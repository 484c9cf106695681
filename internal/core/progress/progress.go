// Package progress persists reclamation checkpoints so interrupted runs
// resume where they stopped instead of re-spending lookups.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State is the checkpoint document. ValidatedWords is append-only:
// once a word is recorded as checked it is never checked again, whatever
// the outcome was.
type State struct {
	ValidatedCount int      `json:"validated_count"`
	PromotedCount  int      `json:"promoted_count"`
	LastRun        string   `json:"last_run"`
	ValidatedWords []string `json:"validated_words"`

	seen map[string]struct{}
}

func (s *State) seenSet() map[string]struct{} {
	if s.seen == nil {
		s.seen = make(map[string]struct{}, len(s.ValidatedWords))
		for _, w := range s.ValidatedWords {
			s.seen[w] = struct{}{}
		}
	}
	return s.seen
}

// Contains reports whether word was already checked in a prior run.
func (s *State) Contains(word string) bool {
	_, ok := s.seenSet()[word]
	return ok
}

// Exclude returns the words from pool not yet checked, preserving order.
func (s *State) Exclude(pool []string) []string {
	remaining := make([]string, 0, len(pool))
	for _, word := range pool {
		if !s.Contains(word) {
			remaining = append(remaining, word)
		}
	}
	return remaining
}

// Apply records a completed batch: every word in checked is marked as
// validated (duplicates are ignored) and the counters advance. Counters
// only ever grow.
func (s *State) Apply(checked []string, promoted int, now time.Time) {
	seen := s.seenSet()
	for _, word := range checked {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		s.ValidatedWords = append(s.ValidatedWords, word)
		s.ValidatedCount++
	}
	s.PromotedCount += promoted
	s.LastRun = now.UTC().Format(time.RFC3339)
}

// Tracker loads and saves checkpoint state at a fixed path.
type Tracker struct {
	Path string

	// Clock is used for LastRun stamps. Nil means time.Now.
	Clock func() time.Time
}

func (t *Tracker) now() time.Time {
	if t.Clock != nil {
		return t.Clock()
	}
	return time.Now()
}

// Load reads the checkpoint. A missing file is a fresh start, not an
// error. A file that exists but does not parse is an error: silently
// resetting would re-spend the whole lookup budget.
func (t *Tracker) Load() (*State, error) {
	data, err := os.ReadFile(t.Path) // #nosec G304 -- checkpoint path comes from config
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress %s: %w", t.Path, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse progress %s: %w", t.Path, err)
	}
	return &state, nil
}

// Save writes the checkpoint atomically. A crash mid-write leaves the
// previous checkpoint intact.
func (t *Tracker) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(t.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create progress dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("stage progress: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           // nolint:errcheck
		os.Remove(tmpName)    // nolint:errcheck
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("close progress: %w", err)
	}
	if err := os.Rename(tmpName, t.Path); err != nil {
		os.Remove(tmpName) // nolint:errcheck
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

// Stamp updates LastRun without touching the word set, for runs that
// completed with nothing to do.
func (t *Tracker) Stamp(state *State) {
	state.LastRun = t.now().UTC().Format(time.RFC3339)
}

// Reset removes the checkpoint file. Missing is fine.
func (t *Tracker) Reset() error {
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress %s: %w", t.Path, err)
	}
	return nil
}
