package cmd

import (
	"transmap/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to search locations, plan routes, draw transit lines, and browse departures interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return tui.RunTUI(app)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
