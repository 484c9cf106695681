package discover

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/rules"
)

// Recorder persists discovered words for a later corpus update.
type Recorder interface {
	RecordDiscovered(ctx context.Context, word, source string, at time.Time) error
}

// Report summarizes one discovery sweep.
type Report struct {
	// Found counts candidate words per source before filtering.
	Found map[string]int `json:"found"`
	// Recorded lists the new words persisted, sorted.
	Recorded []string `json:"recorded"`
	// Failed maps source name to the error that disabled it this sweep.
	Failed map[string]string `json:"failed,omitempty"`
}

// Discoverer sweeps the configured sources and records candidate words
// the corpus does not already know about. Source failures are degraded
// to warnings so one dead feed cannot block the others.
type Discoverer struct {
	Sources  []Source
	Recorder Recorder
	Rules    rules.Rules

	// Known holds words already in the corpus; they are never recorded.
	Known map[string]struct{}

	Logger engine.Logger
	Clock  func() time.Time
}

func (d *Discoverer) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d *Discoverer) logger() engine.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}

type sourceResult struct {
	name  string
	words []string
	err   error
}

// Run sweeps every source concurrently and records the survivors.
func (d *Discoverer) Run(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := d.logger()

	results := make([]sourceResult, len(d.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range d.Sources {
		g.Go(func() error {
			words, err := src.Discover(gctx)
			results[i] = sourceResult{name: src.Name(), words: words, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Found: map[string]int{}}
	now := d.now()

	recorded := map[string]struct{}{}
	for _, res := range results {
		if res.err != nil {
			log.Warn("discovery source failed",
				zap.String("source", res.name), zap.String("error", res.err.Error()))
			if report.Failed == nil {
				report.Failed = map[string]string{}
			}
			report.Failed[res.name] = res.err.Error()
			continue
		}
		report.Found[res.name] = len(res.words)

		for _, raw := range res.words {
			word, err := d.Rules.Validate(raw)
			if err != nil {
				continue
			}
			if _, ok := d.Known[word]; ok {
				continue
			}
			if _, ok := recorded[word]; ok {
				continue
			}
			if d.Recorder != nil {
				if err := d.Recorder.RecordDiscovered(ctx, word, res.name, now); err != nil {
					return report, err
				}
			}
			recorded[word] = struct{}{}
			report.Recorded = append(report.Recorded, word)
		}
	}

	sort.Strings(report.Recorded)
	log.Info("discovery sweep complete",
		zap.Int("recorded", len(report.Recorded)),
		zap.Int("sources", len(d.Sources)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}
