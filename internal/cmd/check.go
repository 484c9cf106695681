package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/observability"
	"github.com/wordlens/wordlens/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check [words...]",
	Short: "Look words up through the dictionary chain",
	Long: `Classify words through the backend chain: Merriam-Webster collegiate,
then medical, then the free dictionary. Results are cached; use
--no-cache to force fresh lookups.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("words-file", "", "read words from a file (one per line, - for stdin)")
	checkCmd.Flags().Bool("no-cache", false, "skip cache lookup")
	checkCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	checkCmd.Flags().String("out", "", "write results to a file instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	wordsFile, err := cmd.Flags().GetString("words-file")
	if err != nil {
		return err
	}
	words, err := resolveWords(args, wordsFile)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	startedAt := time.Now()
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	client := newDictClient(cfg, db)
	if noCache {
		client.Cache = nil
	}

	results := make([]*core.WordResult, 0, len(words))
	for _, word := range words {
		res, err := client.Lookup(ctx, word)
		if err != nil {
			return fmt.Errorf("look up %s: %w", word, err)
		}
		results = append(results, res)
	}

	rendered, err := output.NewFormatter(format).FormatResults(results)
	if err != nil {
		return err
	}
	if err := emit(cmd, rendered); err != nil {
		return err
	}

	if format != output.FormatJSON {
		logThroughput(len(results), startedAt)
	}
	return nil
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Lookup throughput",
		zap.Int("lookups", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
