package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scoutlens",
	Short: "AI-powered soccer player scouting reports and chat",
	Long: `ScoutLens turns raw player statistics and model output into full
scouting reports using a pipeline of LLM agents, enriched with recent
news pulled from the web. A session-aware chatbot answers follow-up
questions, grounded in generated reports.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".scoutlens.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
