//go:build cgo

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/dict"
)

func openMemoryStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestOpenMemoryStore(t *testing.T) {
	s := openMemoryStore(t)
	require.Equal(t, "libsql", s.Driver())
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openMemoryStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestLookupCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)

	result := &core.WordResult{
		Word:          "mind",
		Status:        core.StatusValid,
		PartOfSpeech:  "noun",
		Definition:    "the element of a person that feels and reasons",
		Pronunciation: "ˈmīnd",
		Etymology:     "Middle English",
		Source:        string(core.BackendCollegiate),
	}
	require.NoError(t, s.PutLookup(ctx, result))

	cached, ok, err := s.GetLookup(ctx, "mind")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, core.StatusValid, cached.Status)
	require.Equal(t, "noun", cached.PartOfSpeech)
	require.Equal(t, result.Definition, cached.Definition)
	require.True(t, cached.Provenance.FromCache)
	require.NotNil(t, cached.Provenance.CacheExpiresAt)

	_, ok, err = s.GetLookup(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupCacheExpiry(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)
	s.CacheTTL = time.Hour

	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	s.Clock = func() time.Time { return now }

	require.NoError(t, s.PutLookup(ctx, &core.WordResult{Word: "mind", Status: core.StatusValid}))

	_, ok, err := s.GetLookup(ctx, "mind")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok, err = s.GetLookup(ctx, "mind")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupCacheNeverStoresErrors(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)

	require.NoError(t, s.PutLookup(ctx, &core.WordResult{
		Word: "mind", Status: core.StatusError, Error: "upstream unavailable",
	}))

	_, ok, err := s.GetLookup(ctx, "mind")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLookupCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)

	require.NoError(t, s.PutLookup(ctx, &core.WordResult{Word: "mind", Status: core.StatusValid}))
	require.NoError(t, s.PutLookup(ctx, &core.WordResult{Word: "qzxjk", Status: core.StatusNotFound}))
	require.NoError(t, s.PutLookup(ctx, &core.WordResult{Word: "paris", Status: core.StatusProperNoun}))

	stats, err := s.LookupCacheStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.ByStatus[string(core.StatusValid)])
	require.Equal(t, 1, stats.ByStatus[string(core.StatusNotFound)])

	removed, err := s.ClearLookupCache(ctx, false)
	require.NoError(t, err)
	require.EqualValues(t, 3, removed)

	stats, err = s.LookupCacheStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Total)
}

func TestBudgetSpendAndExhaustion(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)
	s.DailyBudget = 2

	require.NoError(t, s.Spend(ctx))
	require.NoError(t, s.Spend(ctx))
	require.ErrorIs(t, s.Spend(ctx), dict.ErrBudgetExhausted)

	used, limit, err := s.BudgetUsage(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, used)
	require.Equal(t, 2, limit)
}

func TestBudgetResetsNextDay(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)
	s.DailyBudget = 1

	now := time.Date(2026, 2, 7, 23, 0, 0, 0, time.UTC)
	s.Clock = func() time.Time { return now }

	require.NoError(t, s.Spend(ctx))
	require.ErrorIs(t, s.Spend(ctx), dict.ErrBudgetExhausted)

	now = now.Add(2 * time.Hour)
	require.NoError(t, s.Spend(ctx))
}

func TestDiscoveries(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)

	at := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordDiscovered(ctx, "boba", "merriam-webster-wotd", at))
	require.NoError(t, s.RecordDiscovered(ctx, "petrichor", "wordnik-wotd", at.Add(time.Hour)))

	// Re-recording keeps the original source.
	require.NoError(t, s.RecordDiscovered(ctx, "boba", "manual", at.Add(2*time.Hour)))

	pending, err := s.UnmergedDiscoveries(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, "boba", pending[0].Word)
	require.Equal(t, "merriam-webster-wotd", pending[0].Source)

	require.NoError(t, s.MarkMerged(ctx, []string{"boba"}))
	pending, err = s.UnmergedDiscoveries(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "petrichor", pending[0].Word)
}
