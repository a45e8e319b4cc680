package cmd

import (
	"fmt"

	"transmap/pkg/config"
	"transmap/pkg/search"
	"transmap/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage transmap configuration",
	Long:  "View or edit your local configuration settings (backend URL, home stop, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		setHome, _ := cmd.Flags().GetString("set-home")
		if setHome != "" {
			fmt.Printf("Searching stops for: '%s'...\n", setHome)

			app, err := newApp()
			if err != nil {
				return err
			}

			var match *search.Location
			for _, r := range app.Orchestrator.SearchNow(setHome) {
				if r.Source == search.SourceStop {
					match = &r
					break
				}
			}
			if match == nil {
				return fmt.Errorf("no matching stop found for '%s'", setHome)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.HomeStopID = match.StopID
			cfg.HomeLabel = match.Label

			if err := config.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ Home stop successfully saved as: %s (ID: %s)\n", match.Label, match.StopID)
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-home", "s", "", "Set your home stop for quick routing and departures")
}
