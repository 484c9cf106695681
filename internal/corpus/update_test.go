package corpus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/rules"
	"github.com/wordlens/wordlens/internal/core/store"
)

type fakeDiscoveries struct {
	pending []store.Discovery
	merged  []string
}

func (f *fakeDiscoveries) UnmergedDiscoveries(context.Context) ([]store.Discovery, error) {
	return f.pending, nil
}

func (f *fakeDiscoveries) MarkMerged(_ context.Context, words []string) error {
	f.merged = append(f.merged, words...)
	return nil
}

type fakeLookup struct {
	results map[string]core.LookupStatus
}

func (f *fakeLookup) Lookup(_ context.Context, word string) (*core.WordResult, error) {
	status, ok := f.results[word]
	if !ok {
		status = core.StatusNotFound
	}
	res := &core.WordResult{Word: word, Status: status, Source: "mw-collegiate"}
	if status == core.StatusValid {
		res.PartOfSpeech = "noun"
	}
	if status == core.StatusError {
		res.Error = "upstream unavailable"
	}
	return res, nil
}

func newTestUpdater(t *testing.T) (*Updater, *Manager, *fakeDiscoveries) {
	t.Helper()
	m := newTestManager(t)
	disc := &fakeDiscoveries{}
	u := &Updater{
		Corpus:      m,
		Discoveries: disc,
		Rules:       rules.Default(),
		Dict:        &fakeLookup{results: map[string]core.LookupStatus{}},
		Clock:       func() time.Time { return time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC) },
	}
	return u, m, disc
}

func TestUpdatePromotesFromLog(t *testing.T) {
	u, m, _ := newTestUpdater(t)
	ctx := context.Background()

	require.NoError(t, m.SaveValid([]string{"apple"}))
	require.NoError(t, m.SaveInvalid([]string{"mind", "qzxjk"}))
	require.NoError(t, m.AppendPromoted(ctx, []*core.WordResult{
		{Word: "mind", Status: core.StatusValid, PartOfSpeech: "noun", Source: "mw-collegiate"},
	}))

	stats, err := u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"mind"}, stats.Promoted)
	require.Equal(t, 2, stats.TotalValid)
	require.Equal(t, 1, stats.TotalInvalid)

	valid, err := m.ValidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "mind"}, valid)

	invalid, err := m.InvalidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"qzxjk"}, invalid)

	meta, err := m.Metadata()
	require.NoError(t, err)
	require.Equal(t, "noun", meta["mind"].PartOfSpeech)

	// The promotion log is consumed.
	entries, err := m.PromotedEntries()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestUpdateMergesVerifiedDiscoveries(t *testing.T) {
	u, m, disc := newTestUpdater(t)
	ctx := context.Background()

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	disc.pending = []store.Discovery{
		{Word: "boba", Source: "wordnik-wotd", DiscoveredAt: at},
		{Word: "zzzzxq", Source: "manual", DiscoveredAt: at},
		{Word: "Paris!", Source: "manual", DiscoveredAt: at},
	}
	u.Dict = &fakeLookup{results: map[string]core.LookupStatus{"boba": core.StatusValid}}

	stats, err := u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"boba"}, stats.NewWords)
	require.Equal(t, 1, stats.Sources["wordnik-wotd"])

	valid, err := m.ValidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"boba"}, valid)

	// All three are settled: admitted, failed verification, or
	// rejected by intake rules.
	require.ElementsMatch(t, []string{"boba", "zzzzxq", "Paris!"}, disc.merged)
}

func TestUpdateRetriesErroredDiscoveries(t *testing.T) {
	u, _, disc := newTestUpdater(t)
	ctx := context.Background()

	disc.pending = []store.Discovery{
		{Word: "boba", Source: "wordnik-wotd", DiscoveredAt: time.Now()},
	}
	u.Dict = &fakeLookup{results: map[string]core.LookupStatus{"boba": core.StatusError}}

	stats, err := u.Run(ctx)
	require.NoError(t, err)
	require.Empty(t, stats.NewWords)
	require.Empty(t, disc.merged)
}

func TestUpdateUnverifiedWithoutDict(t *testing.T) {
	u, m, disc := newTestUpdater(t)
	ctx := context.Background()

	disc.pending = []store.Discovery{
		{Word: "boba", Source: "manual", DiscoveredAt: time.Now()},
	}
	u.Dict = nil

	stats, err := u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"boba"}, stats.NewWords)

	meta, err := m.Metadata()
	require.NoError(t, err)
	require.Equal(t, "unverified", meta["boba"].ValidationStatus)
}

func TestUpdateDryRunLeavesCorpusUntouched(t *testing.T) {
	u, m, disc := newTestUpdater(t)
	ctx := context.Background()

	require.NoError(t, m.SaveValid([]string{"apple"}))
	require.NoError(t, m.SaveInvalid([]string{"mind"}))
	require.NoError(t, m.AppendPromoted(ctx, []*core.WordResult{
		{Word: "mind", Status: core.StatusValid, PartOfSpeech: "noun", Source: "mw-collegiate"},
	}))
	disc.pending = []store.Discovery{
		{Word: "boba", Source: "manual", DiscoveredAt: time.Now()},
	}
	u.Dict = &fakeLookup{results: map[string]core.LookupStatus{"boba": core.StatusValid}}
	u.DryRun = true

	stats, err := u.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"mind"}, stats.Promoted)
	require.Equal(t, []string{"boba"}, stats.NewWords)

	// Nothing was written or consumed.
	valid, err := m.ValidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"apple"}, valid)

	invalid, err := m.InvalidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"mind"}, invalid)

	entries, err := m.PromotedEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Empty(t, disc.merged)
}

func TestUpdateIdempotentWhenNothingPending(t *testing.T) {
	u, m, _ := newTestUpdater(t)
	ctx := context.Background()

	require.NoError(t, m.SaveValid([]string{"apple"}))

	first, err := u.Run(ctx)
	require.NoError(t, err)
	second, err := u.Run(ctx)
	require.NoError(t, err)

	require.Equal(t, first.TotalValid, second.TotalValid)
	require.Empty(t, second.Promoted)
	require.Empty(t, second.NewWords)
}
