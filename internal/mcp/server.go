package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/scoutlens/scoutlens/internal/chatbot"
	"github.com/scoutlens/scoutlens/internal/players"
	"github.com/scoutlens/scoutlens/internal/report"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes player scouting tools.
type Server struct {
	catalog *players.Catalog
	reports *report.Orchestrator
	store   *report.Store
	chat    *chatbot.Orchestrator
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(catalog *players.Catalog, reports *report.Orchestrator, store *report.Store, chat *chatbot.Orchestrator) *Server {
	s := &Server{
		catalog: catalog,
		reports: reports,
		store:   store,
		chat:    chat,
	}

	s.mcp = server.NewMCPServer(
		"scoutlens",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchPlayersTool, s.handleSearchPlayers)
	s.mcp.AddTool(generateReportTool, s.handleGenerateReport)
	s.mcp.AddTool(askAboutPlayerTool, s.handleAskAboutPlayer)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
