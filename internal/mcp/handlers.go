package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/scoutlens/scoutlens/internal/chatbot"
	"github.com/scoutlens/scoutlens/internal/export"
	"github.com/scoutlens/scoutlens/internal/players"
	"github.com/scoutlens/scoutlens/internal/report"
)

// handleSearchPlayers looks up players in the catalog.
func (s *Server) handleSearchPlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	results := s.catalog.Search(query, limit)
	if len(results) == 0 {
		return mcp.NewToolResultText("No players matched. Try a shorter name fragment or the numeric player id."), nil
	}

	return mcp.NewToolResultText(formatPlayers(results)), nil
}

// handleGenerateReport runs the full report pipeline for a catalog player.
func (s *Server) handleGenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID, err := request.RequireInt("player_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: player_id"), nil
	}

	doc, err := s.catalog.Document(playerID)
	if errors.Is(err, players.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("player %d not found in the catalog", playerID)), nil
	}
	if errors.Is(err, players.ErrNoDocument) {
		return mcp.NewToolResultError(fmt.Sprintf("player %d has no model data available", playerID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading player data: %v", err)), nil
	}

	rep, err := s.reports.GeneratePlayerReport(ctx, doc, "", "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}

	id, err := s.store.Save(ctx, rep)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing report: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Report id: %s\n\n", id)
	sb.WriteString(export.Markdown(rep))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleAskAboutPlayer answers a question, grounded in a stored report
// when one is referenced.
func (s *Server) handleAskAboutPlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	sessionID := request.GetString("session_id", "")
	reportID := request.GetString("report_id", "")

	var (
		reply   *chatbot.Reply
		chatErr error
	)
	if reportID != "" {
		rec, err := s.store.Get(ctx, reportID)
		if errors.Is(err, report.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("report %q not found", reportID)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading report: %v", err)), nil
		}
		reply, chatErr = s.chat.ReportChat(ctx, sessionID, "mcp", rec.Report, nil, question, nil)
	} else {
		reply, chatErr = s.chat.ProcessMessage(ctx, sessionID, "mcp", question, nil)
	}
	if chatErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", chatErr)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n(session: %s)", reply.Content, reply.SessionID)), nil
}

// formatPlayers renders catalog hits as readable lines.
func formatPlayers(results []players.Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d player(s):\n", len(results))
	for _, p := range results {
		fmt.Fprintf(&sb, "\n- %s (id %d)", p.Name, p.ID)
		if p.Position != "" {
			fmt.Fprintf(&sb, ", %s", p.Position)
		}
		if p.Club != "" {
			fmt.Fprintf(&sb, ", %s", p.Club)
		}
		if p.MarketValueEUR != nil {
			fmt.Fprintf(&sb, ", market value %.0f EUR", *p.MarketValueEUR)
		}
	}
	return sb.String()
}
