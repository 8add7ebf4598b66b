package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/chatbot"
	"github.com/scoutlens/scoutlens/internal/db"
	"github.com/scoutlens/scoutlens/internal/players"
	"github.com/scoutlens/scoutlens/internal/report"
	"github.com/scoutlens/scoutlens/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoutlens HTTP server",
	Long:  `Starts the HTTP server: report generation and retrieval, the streaming chatbot (HTTP and WebSocket), session management and player search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
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
		reports := report.NewStore(database)

		catalog, err := players.Load(cfg.DataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: player catalog unavailable: %v\n", err)
			fmt.Fprintf(os.Stderr, "Player search and catalog-based generation are disabled.\n")
			catalog = nil
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		})

		r := srv.Router()
		report.RegisterRoutes(r, reportOrch, reports, catalog)
		chatbot.RegisterRoutes(r, chatOrch, reports)
		if catalog != nil {
			players.RegisterRoutes(r, catalog)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "scoutlens server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)
		if catalog != nil {
			fmt.Fprintf(os.Stderr, "  Players: %d\n", catalog.Len())
		}

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
