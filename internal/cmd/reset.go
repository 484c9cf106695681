package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/core/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard reclamation progress",
	Long: `Delete the progress checkpoint so the next run re-selects from the
full invalid-word pool. Already-promoted words are unaffected; the
promotion log and corpus lists stay as they are.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("force", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	manager := corpusManager(cfg)
	tracker := &progress.Tracker{Path: manager.ProgressPath()}

	if !force {
		state, err := tracker.Load()
		if err != nil {
			return err
		}
		fmt.Printf("This discards progress for %d checked words (%d promoted). Continue? [y/N] ",
			state.ValidatedCount, state.PromotedCount)

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n') // nolint:errcheck
		if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := tracker.Reset(); err != nil {
		return err
	}
	fmt.Println("Progress reset.")
	return nil
}
