package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/output"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Render a changelog entry for the last update",
	Long: `Render the markdown changelog entry for the most recent corpus update.
With --write it is prepended to the corpus CHANGELOG.md; otherwise it
goes to stdout.`,
	RunE: runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().Bool("write", false, "prepend the entry to CHANGELOG.md")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
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
	if stats.LastUpdate == "" {
		return errors.New("no corpus update recorded yet")
	}

	meta, err := manager.Metadata()
	if err != nil {
		return err
	}

	if write {
		if err := output.WriteChangelog(manager, stats, meta); err != nil {
			return err
		}
		fmt.Printf("Changelog updated: %s\n", manager.ChangelogPath())
		return nil
	}

	fmt.Print(output.RenderChangelogSection(stats, meta))
	return nil
}
