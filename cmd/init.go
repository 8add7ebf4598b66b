package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize scoutlens configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure models and data paths and generates a .scoutlens.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
