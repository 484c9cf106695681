package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wordlens/wordlens/internal/core"
)

// AppendPromoted records confirmed words in the promotion log. The log
// holds full metadata so the corpus update does not need to look the
// words up again.
func (m *Manager) AppendPromoted(_ context.Context, results []*core.WordResult) error {
	if len(results) == 0 {
		return nil
	}

	entries, err := m.PromotedEntries()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Word] = struct{}{}
	}

	now := time.Now()
	for _, res := range results {
		if _, ok := seen[res.Word]; ok {
			continue
		}
		seen[res.Word] = struct{}{}
		entries = append(entries, NewEntry(res, now))
	}

	return m.savePromoted(entries)
}

// PromotedEntries loads the promotion log. A missing file is an empty
// log.
func (m *Manager) PromotedEntries() ([]Entry, error) {
	data, err := os.ReadFile(m.PromotedPath()) // #nosec G304 -- corpus dir comes from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read promotion log: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse promotion log: %w", err)
	}
	return entries, nil
}

// ClearPromoted empties the promotion log after its entries have been
// merged into the corpus.
func (m *Manager) ClearPromoted() error {
	return m.savePromoted(nil)
}

func (m *Manager) savePromoted(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode promotion log: %w", err)
	}
	return m.writeFileAtomic(m.PromotedPath(), append(data, '\n'))
}
