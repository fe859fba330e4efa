package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "codedash",
	Short: "Local synchronization gateway for the codebase metrics dashboard",
	Long: `codedash sits between the dashboard UI and the remote analysis API.
It caches and coalesces resource fetches, tracks section navigation,
debounces search input, and streams status notifications to the UI.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".codedash.yml", "config file path")
}
