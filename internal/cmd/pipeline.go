package cmd

import (
	"fmt"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core/dict"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/heuristics"
	"github.com/wordlens/wordlens/internal/core/progress"
	"github.com/wordlens/wordlens/internal/core/store"
	"github.com/wordlens/wordlens/internal/corpus"
	"github.com/wordlens/wordlens/internal/discover"
	"github.com/wordlens/wordlens/internal/observability"
)

func corpusManager(cfg *config.Config) *corpus.Manager {
	return corpus.NewManager(cfg.Corpus.Dir)
}

func newPrioritizer(cfg *config.Config) (*heuristics.Prioritizer, error) {
	rules := heuristics.DefaultRuleset()
	if cfg.Run.Ruleset != "" {
		loaded, err := heuristics.LoadRuleset(cfg.Run.Ruleset)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	return heuristics.New(rules)
}

// newDictClient assembles the lookup chain with the store backing both
// the result cache and the daily budget.
func newDictClient(cfg *config.Config, db *store.Store) *dict.Client {
	client := dict.NewClient(cfg.Dict.CollegiateKey, cfg.Dict.MedicalKey)
	client.Cache = db
	client.Version = versionInfo.Version

	retry := engine.DefaultRetryPolicy()
	if cfg.Dict.MaxRetries > 0 {
		retry.MaxAttempts = cfg.Dict.MaxRetries
	}

	// The Merriam-Webster backends share one pacer so the minimum delay
	// holds across the whole chain.
	pacer := &engine.Pacer{Delay: cfg.Dict.RequestDelay}
	for _, backend := range client.Backends {
		mw, ok := backend.(*dict.MWBackend)
		if !ok {
			continue
		}
		mw.Budget = db
		mw.Retry = retry
		if cfg.Dict.RequestDelay > 0 {
			mw.Pacer = pacer
		}
		if cfg.Dict.Timeout > 0 && mw.Client != nil {
			mw.Client.Timeout = cfg.Dict.Timeout
		}
	}
	return client
}

func newReclaimer(cfg *config.Config, db *store.Store) (*engine.Reclaimer, *corpus.Manager, error) {
	prioritizer, err := newPrioritizer(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("load heuristics: %w", err)
	}

	manager := corpusManager(cfg)
	reclaimer := &engine.Reclaimer{
		Pool:        manager,
		Progress:    &progress.Tracker{Path: manager.ProgressPath()},
		Prioritizer: prioritizer,
		Rules:       intakeRules(),
		Dict:        newDictClient(cfg, db),
		Promotions:  manager,
		Logger:      observability.CLILogger,
	}
	return reclaimer, manager, nil
}

func newUpdater(cfg *config.Config, db *store.Store) *corpus.Updater {
	return &corpus.Updater{
		Corpus:      corpusManager(cfg),
		Discoveries: db,
		Rules:       intakeRules(),
		Dict:        newDictClient(cfg, db),
		Logger:      observability.CLILogger,
	}
}

func newDiscoverer(cfg *config.Config, db *store.Store) (*discover.Discoverer, error) {
	manager := corpusManager(cfg)

	known := map[string]struct{}{}
	for _, listFn := range []func() ([]string, error){manager.ValidWords, manager.InvalidWords} {
		words, err := listFn()
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			known[w] = struct{}{}
		}
	}

	sources := []discover.Source{newMWFeedSource(cfg)}
	if cfg.Discovery.WordnikKey != "" {
		sources = append(sources, newWordnikSource(cfg))
	}
	if cfg.Discovery.ManualFile != "" {
		sources = append(sources, &discover.ManualSource{Path: cfg.Discovery.ManualFile})
	}

	return &discover.Discoverer{
		Sources:  sources,
		Recorder: db,
		Rules:    intakeRules(),
		Known:    known,
		Logger:   observability.CLILogger,
	}, nil
}

func newMWFeedSource(cfg *config.Config) *discover.MWFeedSource {
	return discover.NewMWFeedSource(cfg.Discovery.MWFeedURL)
}

func newWordnikSource(cfg *config.Config) *discover.WordnikSource {
	src := discover.NewWordnikSource(cfg.Discovery.WordnikKey, cfg.Discovery.LookbackDays)
	if cfg.Discovery.WordnikURL != "" {
		src.URL = cfg.Discovery.WordnikURL
	}
	return src
}
