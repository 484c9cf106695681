package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
)

func TestRunStateSingleFlight(t *testing.T) {
	s := &RunState{}

	require.True(t, s.TryStart())
	require.True(t, s.Active())
	require.False(t, s.TryStart(), "second start while active must fail")

	s.Finish(&core.RunReport{RunID: "a"})
	require.False(t, s.Active())
	require.True(t, s.TryStart(), "start after finish must succeed")
}

func TestRunStateKeepsLastReport(t *testing.T) {
	s := &RunState{}
	require.Nil(t, s.Last())

	require.True(t, s.TryStart())
	s.Finish(&core.RunReport{RunID: "a", Validated: 5})
	require.Equal(t, "a", s.Last().RunID)

	// A failed run finishes with no report and keeps the old one.
	require.True(t, s.TryStart())
	s.Finish(nil)
	require.Equal(t, "a", s.Last().RunID)
}
