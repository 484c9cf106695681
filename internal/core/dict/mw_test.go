package dict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
)

const mindEntry = `[{
	"meta": {"id": "mind:1", "stems": ["mind", "minds"], "section": "alpha"},
	"hwi": {"hw": "mind", "prs": [{"mw": "ˈmīnd"}]},
	"fl": "noun",
	"def": [{"sseq": [[["sense", {"dt": [["text", "{bc}the element of a person that {sx|feels||} and reasons"]]}]]]}],
	"et": [["text", "Middle English, from Old English {it}gemynd{/it}"]]
}]`

func newMWTestBackend(t *testing.T, handler http.HandlerFunc) *MWBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := NewCollegiate("test-key")
	b.BaseURL = srv.URL
	b.Pacer = nil
	b.Retry = engine.RetryPolicy{MaxAttempts: 1}
	return b
}

func TestMWLookupValid(t *testing.T) {
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(mindEntry)) // nolint:errcheck
	})

	res, err := b.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, "noun", res.PartOfSpeech)
	require.Equal(t, "the element of a person that feels and reasons", res.Definition)
	require.Equal(t, "Middle English, from Old English gemynd", res.Etymology)
	require.Equal(t, "ˈmīnd", res.Pronunciation)
	require.Equal(t, string(core.BackendCollegiate), res.Source)
}

func TestMWLookupEntryMismatchIsNotFound(t *testing.T) {
	// The API returns near-miss entries for unknown words; an entry
	// that is not about the queried word does not make it valid.
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mindEntry)) // nolint:errcheck
	})

	res, err := b.Lookup(context.Background(), "noher")
	require.NoError(t, err)
	require.Equal(t, core.StatusNotFound, res.Status)
}

func TestMWLookupSuggestionsAreNotFound(t *testing.T) {
	for name, body := range map[string]string{
		"suggestions": `["mind", "mine", "mint"]`,
		"empty":       `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body)) // nolint:errcheck
			})

			res, err := b.Lookup(context.Background(), "mnd")
			require.NoError(t, err)
			require.Equal(t, core.StatusNotFound, res.Status)
		})
	}
}

func TestMWLookupAbbreviation(t *testing.T) {
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"meta": {"id": "NASA"}, "hwi": {"hw": "NASA"}, "fl": "abbreviation"}]`)) // nolint:errcheck
	})

	res, err := b.Lookup(context.Background(), "nasa")
	require.NoError(t, err)
	require.Equal(t, core.StatusAbbreviation, res.Status)
}

func TestMWLookupProperNoun(t *testing.T) {
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"meta": {"id": "Paris", "section": "geog"}, "hwi": {"hw": "Paris"}, "fl": "geographical name"}]`)) // nolint:errcheck
	})

	res, err := b.Lookup(context.Background(), "paris")
	require.NoError(t, err)
	require.Equal(t, core.StatusProperNoun, res.Status)
}

func TestMWLookupNotConfigured(t *testing.T) {
	b := NewCollegiate("")
	_, err := b.Lookup(context.Background(), "mind")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestMWLookupBudgetExhausted(t *testing.T) {
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request made despite exhausted budget")
	})
	b.Budget = budgetFunc(func(context.Context) error { return ErrBudgetExhausted })

	_, err := b.Lookup(context.Background(), "mind")
	require.ErrorIs(t, err, ErrBudgetExhausted)
}

func TestMWLookupBadKeyNotRetried(t *testing.T) {
	var calls int
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	})
	b.Retry = engine.RetryPolicy{MaxAttempts: 3}

	_, err := b.Lookup(context.Background(), "mind")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid API key")
	require.Equal(t, 1, calls)
}

func TestMWLookupRetriesServerErrors(t *testing.T) {
	var calls int
	b := newMWTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(mindEntry)) // nolint:errcheck
	})
	b.Retry = engine.RetryPolicy{MaxAttempts: 2}

	res, err := b.Lookup(context.Background(), "mind")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, 2, calls)
}

func TestStripMarkers(t *testing.T) {
	require.Equal(t,
		"a dog thing x",
		stripMarkers("{bc}a {sx|dog||} thing {it}x{/it}"))
	require.Equal(t, "plain", stripMarkers("plain"))
}

type budgetFunc func(context.Context) error

func (f budgetFunc) Spend(ctx context.Context) error { return f(ctx) }
