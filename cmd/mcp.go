package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/db"
	mcpserver "github.com/scoutlens/scoutlens/internal/mcp"
	"github.com/scoutlens/scoutlens/internal/players"
	"github.com/scoutlens/scoutlens/internal/report"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Starts a Model Context Protocol server exposing scouting tools
(search_players, generate_player_report, ask_about_player) over stdio, for use
from MCP-capable clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reportOrch, err := buildReportOrchestrator(cfg)
		if err != nil {
			return err
		}
		chatOrch, err := buildChatOrchestrator(cfg)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store := report.NewStore(database)

		catalog, err := players.Load(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("loading player catalog: %w", err)
		}

		mcpserver.Version = Version

		// All logging goes to stderr; stdout carries the MCP protocol.
		fmt.Fprintf(os.Stderr, "scoutlens MCP server v%s starting on stdio\n", Version)

		return mcpserver.NewServer(catalog, reportOrch, store, chatOrch).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
