package corpus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/rules"
	"github.com/wordlens/wordlens/internal/core/store"
)

// DiscoverySource supplies externally discovered words pending merge.
type DiscoverySource interface {
	UnmergedDiscoveries(ctx context.Context) ([]store.Discovery, error)
	MarkMerged(ctx context.Context, words []string) error
}

// Updater folds the promotion log and pending discoveries into the
// corpus lists and records what changed.
type Updater struct {
	Corpus      *Manager
	Discoveries DiscoverySource
	Rules       rules.Rules

	// Dict verifies discovered words before admission. Nil admits them
	// with unverified status for manual review.
	Dict engine.Lookup

	// DryRun computes stats without rewriting the lists, consuming the
	// promotion log, or marking discoveries merged.
	DryRun bool

	Logger engine.Logger
	Clock  func() time.Time
}

func (u *Updater) now() time.Time {
	if u.Clock != nil {
		return u.Clock()
	}
	return time.Now()
}

func (u *Updater) logger() engine.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return zap.NewNop()
}

// Run applies one corpus update: promoted words move from the invalid
// list to the valid list with their cached metadata, verified
// discoveries join the valid list, and the lists are rewritten sorted.
func (u *Updater) Run(ctx context.Context) (*UpdateStats, error) {
	log := u.logger()
	now := u.now()

	valid, err := u.Corpus.ValidWords()
	if err != nil {
		return nil, err
	}
	invalid, err := u.Corpus.InvalidWords()
	if err != nil {
		return nil, err
	}
	meta, err := u.Corpus.Metadata()
	if err != nil {
		return nil, err
	}

	validSet := make(map[string]struct{}, len(valid))
	for _, w := range valid {
		validSet[w] = struct{}{}
	}
	invalidSet := make(map[string]struct{}, len(invalid))
	for _, w := range invalid {
		invalidSet[w] = struct{}{}
	}

	stats := &UpdateStats{
		LastUpdate: now.UTC().Format(time.RFC3339),
		Sources:    map[string]int{},
	}

	// Promotions carry full metadata captured at lookup time.
	promoted, err := u.Corpus.PromotedEntries()
	if err != nil {
		return nil, err
	}
	for _, entry := range promoted {
		delete(invalidSet, entry.Word)
		if _, ok := validSet[entry.Word]; ok {
			continue
		}
		validSet[entry.Word] = struct{}{}
		meta[entry.Word] = entry
		stats.Promoted = append(stats.Promoted, entry.Word)
	}

	if u.Discoveries != nil {
		if err := u.mergeDiscoveries(ctx, validSet, meta, stats, now); err != nil {
			return nil, err
		}
	}

	stats.TotalValid = len(validSet)
	stats.TotalInvalid = len(invalidSet)
	sort.Strings(stats.Promoted)
	sort.Strings(stats.NewWords)

	if u.DryRun {
		log.Info("corpus update dry run, nothing written",
			zap.Int("promoted", len(stats.Promoted)),
			zap.Int("new_words", len(stats.NewWords)))
		return stats, nil
	}

	if err := u.Corpus.SaveValid(setToSlice(validSet)); err != nil {
		return nil, err
	}
	if err := u.Corpus.SaveInvalid(setToSlice(invalidSet)); err != nil {
		return nil, err
	}
	if err := u.Corpus.SaveMetadata(meta); err != nil {
		return nil, err
	}
	if err := u.Corpus.SaveStats(stats); err != nil {
		return nil, err
	}
	if err := u.Corpus.ClearPromoted(); err != nil {
		return nil, err
	}

	log.Info("corpus update complete",
		zap.Int("promoted", len(stats.Promoted)),
		zap.Int("new_words", len(stats.NewWords)),
		zap.Int("total_valid", stats.TotalValid),
		zap.Int("total_invalid", stats.TotalInvalid))
	return stats, nil
}

// mergeDiscoveries admits discovered words that pass the intake rules
// and dictionary verification. Discoveries that fail verification with
// an error outcome stay unmerged and are retried on the next update.
func (u *Updater) mergeDiscoveries(ctx context.Context, validSet map[string]struct{}, meta map[string]Entry, stats *UpdateStats, now time.Time) error {
	log := u.logger()

	discoveries, err := u.Discoveries.UnmergedDiscoveries(ctx)
	if err != nil {
		return err
	}

	var merged []string
	for _, d := range discoveries {
		word, err := u.Rules.Validate(d.Word)
		if err != nil {
			log.Warn("discovered word rejected by intake rules",
				zap.String("word", d.Word), zap.String("reason", err.Error()))
			merged = append(merged, d.Word)
			continue
		}

		if _, ok := validSet[word]; ok {
			merged = append(merged, d.Word)
			continue
		}

		entry := Entry{
			Word:             word,
			Source:           d.Source,
			AddedDate:        now.UTC().Format("2006-01-02"),
			ValidationStatus: "unverified",
		}

		if u.Dict != nil {
			res, err := u.Dict.Lookup(ctx, word)
			if err != nil {
				return fmt.Errorf("verify discovery %s: %w", word, err)
			}
			if res.Status == core.StatusError {
				log.Warn("discovery verification unavailable, will retry",
					zap.String("word", word), zap.String("error", res.Error))
				continue
			}
			if !res.Status.Promotable() {
				log.Info("discovered word failed verification",
					zap.String("word", word), zap.String("status", string(res.Status)))
				merged = append(merged, d.Word)
				continue
			}
			entry = NewEntry(res, now)
			entry.Source = d.Source
		}

		validSet[word] = struct{}{}
		meta[word] = entry
		stats.NewWords = append(stats.NewWords, word)
		stats.Sources[d.Source]++
		merged = append(merged, d.Word)
	}

	if len(merged) > 0 && !u.DryRun {
		if err := u.Discoveries.MarkMerged(ctx, merged); err != nil {
			return err
		}
	}
	return nil
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}
