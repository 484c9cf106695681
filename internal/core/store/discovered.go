package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Discovery is a word picked up from an external source, pending merge
// into the corpus.
type Discovery struct {
	Word         string    `json:"word"`
	Source       string    `json:"source"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// RecordDiscovered stores a discovered word. A word already recorded
// keeps its original source and timestamp.
func (s *Store) RecordDiscovered(ctx context.Context, word, source string, at time.Time) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return errors.New("discovered word is required")
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO discovered_words (word, source, discovered_at, merged)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(word) DO NOTHING
	`, word, source, at.UTC().Unix())
	if err != nil {
		return fmt.Errorf("record discovery: %w", err)
	}
	return nil
}

// UnmergedDiscoveries lists discoveries not yet merged into the corpus,
// oldest first.
func (s *Store) UnmergedDiscoveries(ctx context.Context) ([]Discovery, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT word, source, discovered_at
		FROM discovered_words
		WHERE merged = 0
		ORDER BY discovered_at, word
	`)
	if err != nil {
		return nil, fmt.Errorf("list discoveries: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var discoveries []Discovery
	for rows.Next() {
		var (
			d  Discovery
			at int64
		)
		if err := rows.Scan(&d.Word, &d.Source, &at); err != nil {
			return nil, fmt.Errorf("list discoveries: %w", err)
		}
		d.DiscoveredAt = time.Unix(at, 0).UTC()
		discoveries = append(discoveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discoveries: %w", err)
	}
	return discoveries, nil
}

// MarkMerged flags discoveries as merged into the corpus.
func (s *Store) MarkMerged(ctx context.Context, words []string) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if len(words) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge update: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	for _, word := range words {
		if _, err := tx.ExecContext(ctx, `UPDATE discovered_words SET merged = 1 WHERE word = ?`, word); err != nil {
			return fmt.Errorf("mark %s merged: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge update: %w", err)
	}
	return nil
}
