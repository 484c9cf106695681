package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/output"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Pull new-word candidates from external sources",
	Long: `Sweep the word-of-the-day feeds and the manual additions file for
words the corpus does not know yet. Discoveries are recorded and merged
on the next "update".`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().String("output", "table", "Output format: table, json, markdown")
}

func runDiscover(cmd *cobra.Command, args []string) error {
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

	discoverer, err := newDiscoverer(cfg, db)
	if err != nil {
		return err
	}

	report, err := discoverer.Run(ctx)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Recorded %d new words.\n", len(report.Recorded))
	if len(report.Recorded) > 0 {
		fmt.Printf("  %s\n", strings.Join(report.Recorded, ", "))
	}

	names := make([]string, 0, len(report.Found))
	for name := range report.Found {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %d candidates\n", name, report.Found[name])
	}
	for name, msg := range report.Failed {
		fmt.Printf("  %s failed: %s\n", name, msg)
	}
	return nil
}
