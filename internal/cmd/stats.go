package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the last corpus update's numbers",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	statsCmd.Flags().String("figures", "", "directory to write PNG charts into")
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}
	figuresDir, err := cmd.Flags().GetString("figures")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager := corpusManager(cfg)
	stats, err := manager.Stats()
	if err != nil {
		return err
	}

	if figuresDir != "" {
		if err := output.RenderUpdateFigure(stats, filepath.Join(figuresDir, "update.png")); err != nil {
			return err
		}
		if err := output.RenderSourcesFigure(stats, filepath.Join(figuresDir, "sources.png")); err != nil {
			return err
		}
		fmt.Printf("Figures written to %s\n", figuresDir)
	}

	if format == output.FormatJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if stats.LastUpdate == "" {
		fmt.Println("No corpus update recorded yet.")
		return nil
	}

	fmt.Printf("Last update: %s\n", stats.LastUpdate)
	fmt.Printf("  New words: %d\n", len(stats.NewWords))
	fmt.Printf("  Promoted:  %d\n", len(stats.Promoted))
	fmt.Printf("  Corpus:    %d valid, %d invalid\n", stats.TotalValid, stats.TotalInvalid)

	if len(stats.Sources) > 0 {
		names := make([]string, 0, len(stats.Sources))
		for name := range stats.Sources {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("  Sources:")
		for _, name := range names {
			fmt.Printf("    %s: %d\n", name, stats.Sources[name])
		}
	}
	return nil
}
