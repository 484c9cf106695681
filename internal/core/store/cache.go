package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wordlens/wordlens/internal/core"
)

// GetLookup returns a cached lookup result for word if one exists and
// has not expired.
func (s *Store) GetLookup(ctx context.Context, word string) (*core.WordResult, bool, error) {
	if s == nil || s.DB == nil {
		return nil, false, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return nil, false, errors.New("cache word is required")
	}

	var (
		status        string
		partOfSpeech  sql.NullString
		definition    sql.NullString
		pronunciation sql.NullString
		etymology     sql.NullString
		source        sql.NullString
		checkedAt     int64
		expiresAt     int64
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT status, part_of_speech, definition, pronunciation, etymology, source, checked_at, expires_at
		FROM lookup_cache
		WHERE word = ? AND expires_at > ?
	`, word, s.now().Unix())

	if err := row.Scan(&status, &partOfSpeech, &definition, &pronunciation, &etymology, &source, &checkedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("fetch cached lookup: %w", err)
	}

	expires := time.Unix(expiresAt, 0).UTC()
	result := &core.WordResult{
		Word:          word,
		Status:        core.LookupStatus(status),
		PartOfSpeech:  partOfSpeech.String,
		Definition:    definition.String,
		Pronunciation: pronunciation.String,
		Etymology:     etymology.String,
		Source:        source.String,
		Provenance: core.Provenance{
			ResolvedAt:     time.Unix(checkedAt, 0).UTC(),
			FromCache:      true,
			CacheExpiresAt: &expires,
		},
	}
	return result, true, nil
}

// PutLookup stores a lookup result with the configured TTL. Error
// outcomes are never cached.
func (s *Store) PutLookup(ctx context.Context, result *core.WordResult) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if result == nil || result.Status == core.StatusError {
		return nil
	}

	word := strings.TrimSpace(result.Word)
	if word == "" {
		return errors.New("cache word is required")
	}

	now := s.now()
	expires := now.Add(s.cacheTTL())

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO lookup_cache (word, status, part_of_speech, definition, pronunciation, etymology, source, checked_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			status = excluded.status,
			part_of_speech = excluded.part_of_speech,
			definition = excluded.definition,
			pronunciation = excluded.pronunciation,
			etymology = excluded.etymology,
			source = excluded.source,
			checked_at = excluded.checked_at,
			expires_at = excluded.expires_at
	`, word, string(result.Status), result.PartOfSpeech, result.Definition, result.Pronunciation, result.Etymology, result.Source, now.Unix(), expires.Unix())
	if err != nil {
		return fmt.Errorf("store cached lookup: %w", err)
	}

	return nil
}

// CacheStats summarizes the lookup cache contents.
type CacheStats struct {
	Total    int            `json:"total"`
	Expired  int            `json:"expired"`
	ByStatus map[string]int `json:"by_status"`
}

// LookupCacheStats reports cache size and status distribution.
func (s *Store) LookupCacheStats(ctx context.Context) (*CacheStats, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	stats := &CacheStats{ByStatus: make(map[string]int)}

	rows, err := s.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM lookup_cache GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("read cache stats: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("read cache stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cache stats: %w", err)
	}

	row := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookup_cache WHERE expires_at <= ?`, s.now().Unix())
	if err := row.Scan(&stats.Expired); err != nil {
		return nil, fmt.Errorf("read cache stats: %w", err)
	}

	return stats, nil
}

// ClearLookupCache removes cached lookups. With expiredOnly it removes
// only entries whose TTL has lapsed.
func (s *Store) ClearLookupCache(ctx context.Context, expiredOnly bool) (int64, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		res sql.Result
		err error
	)
	if expiredOnly {
		res, err = s.DB.ExecContext(ctx, `DELETE FROM lookup_cache WHERE expires_at <= ?`, s.now().Unix())
	} else {
		res, err = s.DB.ExecContext(ctx, `DELETE FROM lookup_cache`)
	}
	if err != nil {
		return 0, fmt.Errorf("clear lookup cache: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear lookup cache: %w", err)
	}
	return removed, nil
}
