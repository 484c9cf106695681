package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/output"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the candidates the next run would check",
	Long: `Select and score candidates exactly as "run" would, without spending
any dictionary lookups or API budget.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().Int("limit", 0, "max words to select (default from config)")
	planCmd.Flags().Int("batch-size", 0, "words per checkpoint batch")
	planCmd.Flags().Int("workers", 0, "concurrent lookup workers")
	planCmd.Flags().Bool("sample", false, "uniform random sample instead of heuristic priority")
	planCmd.Flags().String("profile", "", "built-in run profile (daily, deep, smoke, survey)")
	planCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	planCmd.Flags().String("out", "", "write the plan to a file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) error {
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
