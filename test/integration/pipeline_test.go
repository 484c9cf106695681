//go:build cgo

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core/dict"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/heuristics"
	"github.com/wordlens/wordlens/internal/core/progress"
	"github.com/wordlens/wordlens/internal/core/rules"
	"github.com/wordlens/wordlens/internal/core/store"
	"github.com/wordlens/wordlens/internal/corpus"
	"github.com/wordlens/wordlens/internal/output"
)

// fakeDictionary serves Merriam-Webster style responses for a fixed set
// of words; everything else gets an empty suggestion list.
func fakeDictionary(t *testing.T) *httptest.Server {
	t.Helper()

	entry := func(word, fl, section string) string {
		return fmt.Sprintf(`[{
			"meta": {"id": "%s:1", "stems": ["%s"], "section": %q},
			"hwi": {"hw": "%s"},
			"fl": %q,
			"def": [{"sseq": [[["sense", {"dt": [["text", "{bc}a definition of %s"]]}]]]}]
		}]`, word, word, section, word, fl, word)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := path.Base(r.URL.Path)
		switch word {
		case "mind", "boba":
			_, _ = w.Write([]byte(entry(word, "noun", "alpha")))
		case "paris":
			_, _ = w.Write([]byte(`[{"meta": {"id": "Paris", "section": "geog"}, "hwi": {"hw": "Paris"}, "fl": "geographical name"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPipelineStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	require.NoError(t, db.Migrate(ctx))
	db.DailyBudget = 100
	return db
}

func TestReclamationPipelineEndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := fakeDictionary(t)
	db := newPipelineStore(t)

	manager := corpus.NewManager(t.TempDir())
	require.NoError(t, manager.SaveValid([]string{"apple"}))
	require.NoError(t, manager.SaveInvalid([]string{"boba", "mind", "paris"}))

	client := dict.NewClient("test-key", "")
	client.Cache = db
	for _, backend := range client.Backends {
		if mw, ok := backend.(*dict.MWBackend); ok {
			mw.BaseURL = srv.URL
			mw.Pacer = nil
			mw.Retry = engine.RetryPolicy{MaxAttempts: 1}
			mw.Budget = db
		}
	}

	prioritizer, err := heuristics.New(heuristics.DefaultRuleset())
	require.NoError(t, err)

	reclaimer := &engine.Reclaimer{
		Pool:        manager,
		Progress:    &progress.Tracker{Path: manager.ProgressPath()},
		Prioritizer: prioritizer,
		Rules:       rules.Default(),
		Dict:        client,
		Promotions:  manager,
	}

	report, err := reclaimer.Run(ctx, engine.Options{Limit: 3, BatchSize: 2, Workers: 2})
	require.NoError(t, err)
	require.Equal(t, 3, report.Validated)
	require.Equal(t, 2, report.Promoted)
	require.ElementsMatch(t, []string{"boba", "mind"}, report.PromotedWords)

	// A second run finds nothing left to check.
	again, err := reclaimer.Run(ctx, engine.Options{Limit: 3, BatchSize: 2, Workers: 2})
	require.NoError(t, err)
	require.Equal(t, 0, again.Validated)
	require.Equal(t, 0, again.Remaining)

	// Fold promotions into the corpus.
	updater := &corpus.Updater{
		Corpus:      manager,
		Discoveries: db,
		Rules:       rules.Default(),
		Dict:        client,
	}
	stats, err := updater.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"boba", "mind"}, stats.Promoted)
	require.Equal(t, 3, stats.TotalValid)
	require.Equal(t, 1, stats.TotalInvalid)

	valid, err := manager.ValidWords()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"apple", "boba", "mind"}, valid)

	invalid, err := manager.InvalidWords()
	require.NoError(t, err)
	require.Equal(t, []string{"paris"}, invalid)

	// Promotions carry dictionary metadata into the corpus record.
	meta, err := manager.Metadata()
	require.NoError(t, err)
	require.Equal(t, "noun", meta["mind"].PartOfSpeech)

	// The changelog records the update.
	require.NoError(t, output.WriteChangelog(manager, stats, meta))
	data, err := os.ReadFile(manager.ChangelogPath())
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "boba"))

	// Lookups hit the shared cache and the budget ledger.
	used, _, err := db.BudgetUsage(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, used)

	cached, ok, err := db.GetLookup(ctx, "mind")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, cached.Status.Promotable())
}
