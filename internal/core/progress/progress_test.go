package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return &Tracker{
		Path:  filepath.Join(t.TempDir(), "progress.json"),
		Clock: func() time.Time { return time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC) },
	}
}

func TestLoadMissingIsFreshStart(t *testing.T) {
	tracker := newTestTracker(t)

	state, err := tracker.Load()
	require.NoError(t, err)
	require.Equal(t, 0, state.ValidatedCount)
	require.Equal(t, 0, state.PromotedCount)
	require.Empty(t, state.ValidatedWords)
	require.Empty(t, state.LastRun)
}

func TestLoadCorruptFails(t *testing.T) {
	tracker := newTestTracker(t)
	require.NoError(t, os.WriteFile(tracker.Path, []byte("{not json"), 0o600))

	_, err := tracker.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse progress")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tracker := newTestTracker(t)

	state := &State{}
	state.Apply([]string{"mind", "boba"}, 1, tracker.now())
	require.NoError(t, tracker.Save(state))

	loaded, err := tracker.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.ValidatedCount)
	require.Equal(t, 1, loaded.PromotedCount)
	require.Equal(t, []string{"mind", "boba"}, loaded.ValidatedWords)
	require.Equal(t, "2026-02-07T12:00:00Z", loaded.LastRun)
}

func TestApplyIgnoresDuplicates(t *testing.T) {
	now := time.Now()
	state := &State{}

	state.Apply([]string{"mind", "mind"}, 0, now)
	state.Apply([]string{"mind", "boba"}, 1, now)

	require.Equal(t, 2, state.ValidatedCount)
	require.Equal(t, 1, state.PromotedCount)
	require.Equal(t, []string{"mind", "boba"}, state.ValidatedWords)
}

func TestContainsAndExclude(t *testing.T) {
	state := &State{ValidatedWords: []string{"mind", "boba"}}

	require.True(t, state.Contains("mind"))
	require.False(t, state.Contains("cart"))

	remaining := state.Exclude([]string{"mind", "cart", "boba", "lamp"})
	require.Equal(t, []string{"cart", "lamp"}, remaining)
}

func TestSaveIsAtomic(t *testing.T) {
	tracker := newTestTracker(t)

	first := &State{ValidatedCount: 1, ValidatedWords: []string{"mind"}}
	require.NoError(t, tracker.Save(first))

	second := &State{ValidatedCount: 2, ValidatedWords: []string{"mind", "boba"}}
	require.NoError(t, tracker.Save(second))

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(tracker.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	loaded, err := tracker.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.ValidatedCount)
}

func TestReset(t *testing.T) {
	tracker := newTestTracker(t)
	require.NoError(t, tracker.Save(&State{ValidatedCount: 1}))

	require.NoError(t, tracker.Reset())
	_, err := os.Stat(tracker.Path)
	require.True(t, os.IsNotExist(err))

	// Resetting again is a no-op.
	require.NoError(t, tracker.Reset())
}
