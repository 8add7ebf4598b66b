package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/players"
)

var playersLimit int

var playersCmd = &cobra.Command{
	Use:   "players <query>",
	Short: "Search the player catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		catalog, err := players.Load(cfg.DataDir)
		if err != nil {
			return err
		}

		matches := catalog.Search(args[0], playersLimit)
		if len(matches) == 0 {
			fmt.Println("No players matched.")
			return nil
		}

		for _, p := range matches {
			line := fmt.Sprintf("%7d  %s", p.ID, p.Name)
			if p.Position != "" {
				line += "  " + p.Position
			}
			if p.Club != "" {
				line += "  (" + p.Club + ")"
			}
			if !catalog.HasDocument(p.ID) {
				line += "  [no model data]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	playersCmd.Flags().IntVar(&playersLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(playersCmd)
}
