// Package engine runs reclamation passes: selecting candidates from the
// invalid pool, verifying them against dictionary backends, and
// checkpointing progress batch by batch.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/heuristics"
	"github.com/wordlens/wordlens/internal/core/progress"
	"github.com/wordlens/wordlens/internal/core/rules"
)

// Lookup resolves a single word to a classification.
type Lookup interface {
	Lookup(ctx context.Context, word string) (*core.WordResult, error)
}

// Logger is the subset of structured logging the engine needs. Both
// *zap.Logger and the gofulmen logger satisfy it.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// PoolSource supplies the invalid-word pool a run draws from.
type PoolSource interface {
	InvalidWords() ([]string, error)
}

// PromotionLog records confirmed words for the next corpus update.
type PromotionLog interface {
	AppendPromoted(ctx context.Context, results []*core.WordResult) error
}

// Options tunes one reclamation run. Zero values take production
// defaults.
type Options struct {
	Limit     int
	BatchSize int
	Workers   int

	// Sample selects a uniform random sample instead of heuristic
	// prioritization, for estimating pool quality.
	Sample bool
}

const (
	DefaultLimit     = 100
	DefaultBatchSize = 50
	DefaultWorkers   = 5
)

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

func (o Options) mode() string {
	if o.Sample {
		return "sample"
	}
	return "priority"
}

// Reclaimer coordinates one reclamation pass end to end.
type Reclaimer struct {
	Pool        PoolSource
	Progress    *progress.Tracker
	Prioritizer *heuristics.Prioritizer

	// Rules screen each word before a lookup is spent on it. The zero
	// value rejects only empty strings.
	Rules rules.Rules

	Dict       Lookup
	Promotions PromotionLog
	Logger     Logger
	Clock      func() time.Time
	Rand       *rand.Rand
}

func (r *Reclaimer) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

func (r *Reclaimer) logger() Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// Plan selects the candidates a run with the same options would check,
// without spending any lookups.
func (r *Reclaimer) Plan(opts Options) ([]core.Candidate, error) {
	opts = opts.withDefaults()

	remaining, err := r.remaining()
	if err != nil {
		return nil, err
	}
	return r.selectCandidates(remaining, opts), nil
}

// Run executes a reclamation pass. Progress is saved after every batch,
// so an interrupted run resumes without re-checking words. An empty
// pool is a successful no-op.
func (r *Reclaimer) Run(ctx context.Context, opts Options) (*core.RunReport, error) {
	opts = opts.withDefaults()
	started := r.now()

	state, err := r.Progress.Load()
	if err != nil {
		return nil, err
	}

	pool, err := r.Pool.InvalidWords()
	if err != nil {
		return nil, err
	}
	remaining := state.Exclude(pool)

	report := &core.RunReport{
		RunID:     uuid.NewString(),
		Date:      started.UTC().Format("2006-01-02"),
		Mode:      opts.mode(),
		Remaining: len(remaining),
	}

	log := r.logger()
	runID := zap.String("run_id", report.RunID)

	if len(remaining) == 0 {
		log.Info("nothing to reclaim, pool exhausted", runID)
		report.Duration = r.now().Sub(started).Seconds()
		report.TotalValidated = state.ValidatedCount
		report.TotalPromoted = state.PromotedCount
		return report, nil
	}

	candidates := r.selectCandidates(remaining, opts)
	log.Info("selected candidates",
		runID,
		zap.String("mode", report.Mode),
		zap.Int("pool", len(pool)),
		zap.Int("remaining", len(remaining)),
		zap.Int("candidates", len(candidates)))

	for start := 0; start < len(candidates); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		words := make([]string, len(batch))
		for i, c := range batch {
			words[i] = c.Word
		}

		// Rule-invalid strings are consumed without a lookup. Sample
		// mode bypasses the heuristic pre-filter, so this is the last
		// gate before the API.
		toCheck := make([]string, 0, len(words))
		ruleRejected := 0
		for _, w := range words {
			canonical, err := r.Rules.Validate(w)
			if err != nil {
				ruleRejected++
				continue
			}
			toCheck = append(toCheck, canonical)
		}

		results, err := r.lookupBatch(ctx, toCheck, opts.Workers)
		if err != nil {
			// The interrupted batch is not checkpointed; its words
			// will be selected again next run.
			if saveErr := r.Progress.Save(state); saveErr != nil {
				log.Error("save progress after interrupted batch", zap.Error(saveErr))
			}
			return nil, fmt.Errorf("lookup batch: %w", err)
		}

		promoted := make([]*core.WordResult, 0, len(results))
		for _, res := range results {
			if res.Status.Promotable() {
				promoted = append(promoted, res)
				report.PromotedWords = append(report.PromotedWords, res.Word)
			}
		}

		if r.Promotions != nil && len(promoted) > 0 {
			if err := r.Promotions.AppendPromoted(ctx, promoted); err != nil {
				return nil, fmt.Errorf("record promotions: %w", err)
			}
		}

		state.Apply(words, len(promoted), r.now())
		if err := r.Progress.Save(state); err != nil {
			return nil, fmt.Errorf("save progress: %w", err)
		}

		report.Validated += len(words)
		report.Promoted += len(promoted)
		log.Info("batch complete",
			runID,
			zap.Int("checked", len(words)),
			zap.Int("rule_rejected", ruleRejected),
			zap.Int("promoted", len(promoted)))
	}

	report.StillInvalid = report.Validated - report.Promoted
	report.Remaining = len(remaining) - report.Validated
	report.Duration = r.now().Sub(started).Seconds()
	report.TotalValidated = state.ValidatedCount
	report.TotalPromoted = state.PromotedCount

	log.Info("run complete",
		runID,
		zap.Int("validated", report.Validated),
		zap.Int("promoted", report.Promoted),
		zap.Int("remaining", report.Remaining))
	return report, nil
}

// Reset discards checkpoint state so the next run starts from the full
// pool.
func (r *Reclaimer) Reset() error {
	return r.Progress.Reset()
}

func (r *Reclaimer) remaining() ([]string, error) {
	state, err := r.Progress.Load()
	if err != nil {
		return nil, err
	}
	pool, err := r.Pool.InvalidWords()
	if err != nil {
		return nil, err
	}
	return state.Exclude(pool), nil
}

func (r *Reclaimer) selectCandidates(remaining []string, opts Options) []core.Candidate {
	if opts.Sample {
		return r.sample(remaining, opts.Limit)
	}
	if r.Rand != nil {
		r.Prioritizer.Rand = r.Rand
	}
	return r.Prioritizer.Prioritize(remaining, opts.Limit)
}

func (r *Reclaimer) sample(remaining []string, limit int) []core.Candidate {
	rng := r.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- sampling, not crypto
	}

	shuffled := make([]string, len(remaining))
	copy(shuffled, remaining)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if limit > len(shuffled) {
		limit = len(shuffled)
	}

	candidates := make([]core.Candidate, limit)
	for i, word := range shuffled[:limit] {
		candidates[i] = core.Candidate{Word: word}
	}
	return candidates
}

// lookupBatch fans a batch out over a worker pool, preserving input
// order in the results. The first hard failure cancels the rest.
func (r *Reclaimer) lookupBatch(ctx context.Context, words []string, workers int) ([]*core.WordResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if workers > len(words) {
		workers = len(words)
	}

	results := make([]*core.WordResult, len(words))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, err := r.Dict.Lookup(ctx, words[idx])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				results[idx] = res
			}
		}()
	}

feed:
	for idx := range words {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
