package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/output"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fold promotions and discoveries into the corpus",
	Long: `Apply one corpus update: move promoted words from the invalid list to
the valid list, merge verified discoveries, rewrite the lists, and
record a changelog entry.`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Bool("no-changelog", false, "skip writing the changelog entry")
	updateCmd.Flags().Bool("no-verify", false, "admit discoveries without dictionary verification")
	updateCmd.Flags().Bool("dry-run", false, "report what would change without touching the corpus")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	noChangelog, err := cmd.Flags().GetBool("no-changelog")
	if err != nil {
		return err
	}
	noVerify, err := cmd.Flags().GetBool("no-verify")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
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

	updater := newUpdater(cfg, db)
	updater.DryRun = dryRun
	if noVerify {
		updater.Dict = nil
	}

	stats, err := updater.Run(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry run: %d new, %d promoted would be applied (%d valid, %d invalid after).\n",
			len(stats.NewWords), len(stats.Promoted), stats.TotalValid, stats.TotalInvalid)
		if len(stats.Promoted) > 0 {
			fmt.Printf("  Promoted: %s\n", strings.Join(stats.Promoted, ", "))
		}
		if len(stats.NewWords) > 0 {
			fmt.Printf("  New: %s\n", strings.Join(stats.NewWords, ", "))
		}
		return nil
	}

	if !noChangelog && (len(stats.NewWords) > 0 || len(stats.Promoted) > 0) {
		meta, err := updater.Corpus.Metadata()
		if err != nil {
			return err
		}
		if err := output.WriteChangelog(updater.Corpus, stats, meta); err != nil {
			return err
		}
	}

	fmt.Printf("Corpus updated: %d new, %d promoted (%d valid, %d invalid total).\n",
		len(stats.NewWords), len(stats.Promoted), stats.TotalValid, stats.TotalInvalid)
	if len(stats.Promoted) > 0 {
		fmt.Printf("  Promoted: %s\n", strings.Join(stats.Promoted, ", "))
	}
	if len(stats.NewWords) > 0 {
		fmt.Printf("  New: %s\n", strings.Join(stats.NewWords, ", "))
	}
	return nil
}
