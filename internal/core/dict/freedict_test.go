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

func newFreeDictTestBackend(t *testing.T, handler http.HandlerFunc) *FreeDictBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := NewFreeDict()
	b.BaseURL = srv.URL
	b.Pacer = nil
	b.Retry = engine.RetryPolicy{MaxAttempts: 1}
	return b
}

func TestFreeDictLookupValid(t *testing.T) {
	b := newFreeDictTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/boba", r.URL.Path)
		w.Write([]byte(`[{
			"word": "boba",
			"phonetic": "/ˈboʊ.bə/",
			"origin": "from Taiwanese slang",
			"meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "tapioca pearls in tea"}]}]
		}]`)) // nolint:errcheck
	})

	res, err := b.Lookup(context.Background(), "boba")
	require.NoError(t, err)
	require.Equal(t, core.StatusValid, res.Status)
	require.Equal(t, "noun", res.PartOfSpeech)
	require.Equal(t, "tapioca pearls in tea", res.Definition)
	require.Equal(t, string(core.BackendFreeDict), res.Source)
}

func TestFreeDictLookupMismatchedEntryNotFound(t *testing.T) {
	b := newFreeDictTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"word": "miner",
			"meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "one who mines"}]}]
		}]`)) // nolint:errcheck
	})

	// An entry for a different headword does not validate the query.
	res, err := b.Lookup(context.Background(), "noher")
	require.NoError(t, err)
	require.Equal(t, core.StatusNotFound, res.Status)
	require.Empty(t, res.Definition)
}

func TestFreeDictLookupNotFound(t *testing.T) {
	b := newFreeDictTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := b.Lookup(context.Background(), "qzxjk")
	require.NoError(t, err)
	require.Equal(t, core.StatusNotFound, res.Status)
}

func TestFreeDictLookupServerError(t *testing.T) {
	b := newFreeDictTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := b.Lookup(context.Background(), "boba")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 502")
}
