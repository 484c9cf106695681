package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/output"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reclamation pass over the invalid-word pool",
	Long: `Select candidates from the invalid-word pool, verify them against the
dictionary chain, and record confirmed words for the next corpus update.

Progress is checkpointed after every batch; an interrupted run resumes
where it left off.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("limit", 0, "max words to check this run (default from config)")
	runCmd.Flags().Int("batch-size", 0, "words per checkpoint batch")
	runCmd.Flags().Int("workers", 0, "concurrent lookup workers")
	runCmd.Flags().Bool("sample", false, "uniform random sample instead of heuristic priority")
	runCmd.Flags().Bool("dry-run", false, "select and score candidates without any lookups (same as \"plan\")")
	runCmd.Flags().String("profile", "", "built-in run profile (daily, deep, smoke, survey)")
	runCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	runCmd.Flags().String("out", "", "write the report to a file instead of stdout")
}

// resolveRunOptions layers flag overrides on top of an optional profile
// and the config defaults.
func resolveRunOptions(cmd *cobra.Command, cfg *config.Config) (engine.Options, error) {
	opts := engine.Options{
		Limit:     cfg.Run.Limit,
		BatchSize: cfg.Run.BatchSize,
		Workers:   cfg.Run.Workers,
	}

	profileName, err := cmd.Flags().GetString("profile")
	if err != nil {
		return opts, err
	}
	if name := strings.TrimSpace(profileName); name != "" {
		profile, ok := core.FindBuiltInProfile(name)
		if !ok {
			return opts, fmt.Errorf("profile %q not found", name)
		}
		if profile.Limit > 0 {
			opts.Limit = profile.Limit
		}
		if profile.BatchSize > 0 {
			opts.BatchSize = profile.BatchSize
		}
		if profile.Workers > 0 {
			opts.Workers = profile.Workers
		}
		opts.Sample = profile.Sample
		if profile.Ruleset != "" {
			cfg.Run.Ruleset = profile.Ruleset
		}
	}

	if v, err := cmd.Flags().GetInt("limit"); err != nil {
		return opts, err
	} else if v > 0 {
		opts.Limit = v
	}
	if v, err := cmd.Flags().GetInt("batch-size"); err != nil {
		return opts, err
	} else if v > 0 {
		opts.BatchSize = v
	}
	if v, err := cmd.Flags().GetInt("workers"); err != nil {
		return opts, err
	} else if v > 0 {
		opts.Workers = v
	}
	if sample, err := cmd.Flags().GetBool("sample"); err != nil {
		return opts, err
	} else if sample {
		opts.Sample = true
	}

	return opts, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := resolveRunOptions(cmd, cfg)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	reclaimer, _, err := newReclaimer(cfg, db)
	if err != nil {
		return err
	}

	if dryRun, err := cmd.Flags().GetBool("dry-run"); err != nil {
		return err
	} else if dryRun {
		candidates, err := reclaimer.Plan(opts)
		if err != nil {
			return err
		}
		rendered, err := output.NewFormatter(format).FormatCandidates(candidates)
		if err != nil {
			return err
		}
		return emit(cmd, rendered)
	}

	report, err := reclaimer.Run(ctx, opts)
	if err != nil {
		return err
	}

	rendered, err := output.NewFormatter(format).FormatReport(report)
	if err != nil {
		return err
	}
	return emit(cmd, rendered)
}
