package corpus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(t.TempDir())
}

func TestWordListsMissingAreEmpty(t *testing.T) {
	m := newTestManager(t)

	valid, err := m.ValidWords()
	require.NoError(t, err)
	require.Empty(t, valid)

	invalid, err := m.InvalidWords()
	require.NoError(t, err)
	require.Empty(t, invalid)
}

func TestWordListSortedAndDeduplicated(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.SaveValid([]string{"zebra", "apple", "zebra", " mango ", ""}))

	words, err := m.ValidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "mango", "zebra"}, words)
}

func TestWordListSkipsComments(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.WriteFile(m.InvalidPath(), []byte("# header\nmind\n\nboba\n"), 0o600))

	words, err := m.InvalidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"mind", "boba"}, words)
}

func TestMetadataRoundTrip(t *testing.T) {
	m := newTestManager(t)

	meta, err := m.Metadata()
	require.NoError(t, err)
	require.Empty(t, meta)

	meta["mind"] = Entry{
		Word:             "mind",
		Source:           "mw-collegiate",
		AddedDate:        "2026-02-07",
		ValidationStatus: "validated",
		PartOfSpeech:     "noun",
	}
	require.NoError(t, m.SaveMetadata(meta))

	loaded, err := m.Metadata()
	require.NoError(t, err)
	require.Equal(t, meta, loaded)
}

func TestAppendPromotedDeduplicates(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	results := []*core.WordResult{
		{Word: "mind", Status: core.StatusValid, PartOfSpeech: "noun", Source: "mw-collegiate"},
	}
	require.NoError(t, m.AppendPromoted(ctx, results))
	require.NoError(t, m.AppendPromoted(ctx, results))

	entries, err := m.PromotedEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "mind", entries[0].Word)
	require.Equal(t, "validated", entries[0].ValidationStatus)
	require.Equal(t, "noun", entries[0].PartOfSpeech)
}

func TestClearPromoted(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.AppendPromoted(ctx, []*core.WordResult{
		{Word: "mind", Status: core.StatusValid, Source: "mw-collegiate"},
	}))
	require.NoError(t, m.ClearPromoted())

	entries, err := m.PromotedEntries()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestNewEntry(t *testing.T) {
	res := &core.WordResult{
		Word:          "boba",
		Status:        core.StatusValid,
		PartOfSpeech:  "noun",
		Definition:    "tapioca pearls in tea",
		Pronunciation: "ˈboʊ.bə",
		Etymology:     "from Taiwanese slang",
		Source:        "free-dictionary",
	}
	entry := NewEntry(res, time.Date(2026, 2, 7, 23, 30, 0, 0, time.UTC))

	require.Equal(t, "boba", entry.Word)
	require.Equal(t, "2026-02-07", entry.AddedDate)
	require.Equal(t, "validated", entry.ValidationStatus)
	require.Equal(t, "free-dictionary", entry.Source)
	require.Equal(t, "tapioca pearls in tea", entry.Definition)
}

func TestCounts(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SaveValid([]string{"apple", "mango"}))
	require.NoError(t, m.SaveInvalid([]string{"qzxjk"}))

	valid, invalid, err := m.Counts()
	require.NoError(t, err)
	require.Equal(t, 2, valid)
	require.Equal(t, 1, invalid)
}

func TestStatsRoundTrip(t *testing.T) {
	m := newTestManager(t)

	stats, err := m.Stats()
	require.NoError(t, err)
	require.Empty(t, stats.NewWords)

	stats = &UpdateStats{
		LastUpdate: "2026-02-07T12:00:00Z",
		NewWords:   []string{"boba"},
		Promoted:   []string{"mind"},
		TotalValid: 2, TotalInvalid: 1,
		Sources: map[string]int{"wordnik-wotd": 1},
	}
	require.NoError(t, m.SaveStats(stats))

	loaded, err := m.Stats()
	require.NoError(t, err)
	require.Equal(t, stats, loaded)
}
