package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordlens/wordlens/internal/core"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect built-in run profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Profiles:")
		for _, profile := range core.BuiltInProfiles {
			fmt.Printf("- %s: %s\n", profile.Name, profile.Description)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("profile name is required")
		}

		profile, ok := core.FindBuiltInProfile(name)
		if !ok {
			return fmt.Errorf("profile %q not found", name)
		}

		fmt.Printf("Profile: %s\n", profile.Name)
		if profile.Description != "" {
			fmt.Printf("  %s\n", profile.Description)
		}
		fmt.Printf("  Limit:      %d\n", profile.Limit)
		fmt.Printf("  Batch size: %d\n", profile.BatchSize)
		fmt.Printf("  Workers:    %d\n", profile.Workers)
		if profile.Sample {
			fmt.Println("  Mode:       sample")
		} else {
			fmt.Println("  Mode:       priority")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
}
