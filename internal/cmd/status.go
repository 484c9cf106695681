package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/progress"
	"github.com/wordlens/wordlens/internal/core/store"
	"github.com/wordlens/wordlens/internal/observability"
	"github.com/wordlens/wordlens/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus, progress, budget, and cache state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	statusCmd.Flags().String("out", "", "write status to a file instead of stdout")
}

// collectStatus gathers the status report. Store-side stats degrade to
// warnings so a broken cache never hides corpus state.
func collectStatus(ctx context.Context, cfg *config.Config, db *store.Store, logger engine.Logger) (*output.StatusReport, error) {
	manager := corpusManager(cfg)
	valid, invalid, err := manager.Counts()
	if err != nil {
		return nil, err
	}

	tracker := &progress.Tracker{Path: manager.ProgressPath()}
	state, err := tracker.Load()
	if err != nil {
		return nil, err
	}

	pool, err := manager.InvalidWords()
	if err != nil {
		return nil, err
	}

	status := &output.StatusReport{
		CorpusValid:   valid,
		CorpusInvalid: invalid,
		Validated:     state.ValidatedCount,
		Promoted:      state.PromotedCount,
		Remaining:     len(state.Exclude(pool)),
		LastRun:       state.LastRun,
	}

	used, limit, err := db.BudgetUsage(ctx)
	if err != nil {
		logger.Warn("Budget usage unavailable", zap.Error(err))
	} else {
		status.BudgetUsed = used
		status.BudgetLimit = limit
	}

	if stats, err := db.LookupCacheStats(ctx); err != nil {
		logger.Warn("Cache stats unavailable", zap.Error(err))
	} else {
		status.CacheEntries = stats.Total
		status.CacheExpired = stats.Expired
	}

	if discoveries, err := db.UnmergedDiscoveries(ctx); err != nil {
		logger.Warn("Pending discoveries unavailable", zap.Error(err))
	} else {
		status.Discoveries = len(discoveries)
	}

	return status, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	status, err := collectStatus(ctx, cfg, db, observability.CLILogger)
	if err != nil {
		return err
	}

	rendered, err := output.NewFormatter(format).FormatStatus(status)
	if err != nil {
		return err
	}
	return emit(cmd, rendered)
}
