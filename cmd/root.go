package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transmap",
	Short: "A CLI and TUI for planning and drawing Munich transit routes",
	Long: `transmap plans door-to-door routes against a local transit backend,
draws the resulting legs with road-following geometry, and shows live
departures for any stop in the network.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
