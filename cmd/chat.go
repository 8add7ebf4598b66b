package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/chatbot"
	"github.com/scoutlens/scoutlens/internal/db"
	"github.com/scoutlens/scoutlens/internal/report"
)

var chatReportID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a terminal chat session. Questions are routed automatically:
report questions are answered from the attached report, everything else
as general soccer chat. Use --report to attach a stored report, or
/report <id> inside the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		orch, err := buildChatOrchestrator(cfg)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		reports := report.NewStore(database)

		ctx := context.Background()
		sessionID := orch.Sessions().Start("cli")

		if chatReportID != "" {
			if err := attachStoredReport(ctx, orch, reports, sessionID, chatReportID); err != nil {
				return err
			}
		}

		fmt.Println("scoutlens chat. Type /quit to exit, /clear to reset, /report <id> to attach a report.")
		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("\n> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			switch {
			case line == "/quit" || line == "/exit":
				return nil
			case line == "/clear":
				orch.Sessions().Clear(sessionID)
				fmt.Println("Session cleared.")
				continue
			case strings.HasPrefix(line, "/report "):
				id := strings.TrimSpace(strings.TrimPrefix(line, "/report "))
				if err := attachStoredReport(ctx, orch, reports, sessionID, id); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					continue
				}
				fmt.Printf("Report %s attached.\n", id)
				continue
			}

			_, err = orch.ProcessMessage(ctx, sessionID, "cli", line, func(chunk string) error {
				fmt.Print(chunk)
				return nil
			})
			fmt.Println()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	},
}

func attachStoredReport(ctx context.Context, orch *chatbot.Orchestrator, reports *report.Store, sessionID, reportID string) error {
	rec, err := reports.Get(ctx, reportID)
	if err != nil {
		return fmt.Errorf("loading report %s: %w", reportID, err)
	}
	return orch.AttachReport(sessionID, rec.Report, nil)
}

func init() {
	chatCmd.Flags().StringVar(&chatReportID, "report", "", "id of a stored report to attach to the session")
	rootCmd.AddCommand(chatCmd)
}
