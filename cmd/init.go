package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/codedash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codedash configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the gateway and generates a .codedash.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
