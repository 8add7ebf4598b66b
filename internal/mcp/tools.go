package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchPlayersTool defines the search_players MCP tool.
var searchPlayersTool = mcp.NewTool("search_players",
	mcp.WithDescription("Search the player catalog by name or id. Returns matching players with position, club and market value."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Player name (full or partial) or numeric player id"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// generateReportTool defines the generate_player_report MCP tool.
var generateReportTool = mcp.NewTool("generate_player_report",
	mcp.WithDescription("Generate a full scouting report for a player: statistical analysis, recent news and a combined recommendation. The report is stored and its id returned for follow-up questions."),
	mcp.WithNumber("player_id",
		mcp.Required(),
		mcp.Description("Catalog id of the player to analyze"),
	),
)

// askAboutPlayerTool defines the ask_about_player MCP tool.
var askAboutPlayerTool = mcp.NewTool("ask_about_player",
	mcp.WithDescription("Ask a question about a player. With a report_id the answer is grounded in that stored scouting report; otherwise the question is answered as general soccer chat."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
	mcp.WithString("report_id",
		mcp.Description("Id of a stored report to ground the answer in"),
	),
	mcp.WithString("session_id",
		mcp.Description("Chat session to continue; omit to start a new one"),
	),
)
