package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/db"
	"github.com/scoutlens/scoutlens/internal/export"
	"github.com/scoutlens/scoutlens/internal/players"
	"github.com/scoutlens/scoutlens/internal/progress"
	"github.com/scoutlens/scoutlens/internal/report"
)

var (
	generateDataFile string
	generateOutput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [player id or name]",
	Short: "Generate a scouting report for a player",
	Long: `Runs the full report pipeline for one player: statistical analysis and
news retrieval in parallel, news impact analysis, then the combined
report. The player is looked up in the catalog by id or name, or player
data is read from a JSON file with --data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		playerData, err := resolvePlayerData(cfg.DataDir, args)
		if err != nil {
			return err
		}

		orch, err := buildReportOrchestrator(cfg)
		if err != nil {
			return err
		}

		reporter := progress.NewReporter()
		reporter.Start(3)
		stageNum := 0
		orch.Progress = func(stage string) {
			stageNum++
			reporter.Update(stageNum, stage)
		}

		rep, err := orch.GeneratePlayerReport(context.Background(), playerData, "", "")
		reporter.Finish()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		id, err := report.NewStore(database).Save(context.Background(), rep)
		if err != nil {
			return fmt.Errorf("storing report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report stored with id %s\n", id)

		if generateOutput != "" {
			if err := export.WriteFile(rep, generateOutput); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Report written to %s\n", generateOutput)
			return nil
		}

		fmt.Println(export.Markdown(rep))
		return nil
	},
}

// resolvePlayerData loads the player document from --data or from the
// catalog by id or name.
func resolvePlayerData(dataDir string, args []string) (map[string]any, error) {
	if generateDataFile != "" {
		raw, err := os.ReadFile(generateDataFile)
		if err != nil {
			return nil, fmt.Errorf("reading player data file: %w", err)
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decoding player data file: %w", err)
		}
		return data, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("a player id or name is required (or use --data)")
	}

	catalog, err := players.Load(dataDir)
	if err != nil {
		return nil, err
	}

	query := args[0]
	if id, err := strconv.Atoi(query); err == nil {
		return catalog.Document(id)
	}

	matches := catalog.Search(query, 2)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no player matched %q", query)
	case 1:
		return catalog.Document(matches[0].ID)
	default:
		return nil, fmt.Errorf("%q is ambiguous; use the player id (try `scoutlens players %s`)", query, query)
	}
}

func init() {
	generateCmd.Flags().StringVar(&generateDataFile, "data", "", "JSON file with player data (bypasses the catalog)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the report to a file (.md or .html)")
	rootCmd.AddCommand(generateCmd)
}
