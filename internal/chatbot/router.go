package chatbot

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/scoutlens/scoutlens/internal/extract"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
)

// Routes a query can resolve to.
const (
	RouteReport  = "report"
	RouteGeneral = "general"
)

var routeSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"classification": {"type": "string", "enum": ["report", "general"]}
	},
	"required": ["classification"],
	"additionalProperties": false
}`)

// QueryRouter classifies a query as report-bound or general chat. Any
// failure or ambiguity falls through to the general route.
type QueryRouter struct {
	gw llm.Gateway
}

func NewQueryRouter(gw llm.Gateway) *QueryRouter {
	return &QueryRouter{gw: gw}
}

func (r *QueryRouter) Route(ctx context.Context, query string) string {
	b := prompt.NewBuilder().
		System(routerSystemPrompt).
		User(prompt.Render(routerUserPrompt, map[string]string{"query": query}))

	resp, err := r.gw.Complete(ctx, llm.CompletionRequest{
		Messages: b.Build(),
		ResponseFormat: &llm.ResponseFormat{
			Type:       llm.FormatJSONSchema,
			SchemaName: "query_route",
			Schema:     routeSchema,
			Strict:     true,
		},
	})
	if err != nil {
		log.Printf("chatbot: routing failed, defaulting to general: %v", err)
		return RouteGeneral
	}

	if val, ok := extract.JSONKey(resp.Content, "classification"); ok {
		if c, isStr := val.(string); isStr {
			switch strings.ToLower(strings.TrimSpace(c)) {
			case RouteReport:
				return RouteReport
			case RouteGeneral:
				return RouteGeneral
			}
		}
	}

	// Last resort: scan the raw answer for a recognizable label.
	if strings.Contains(strings.ToLower(resp.Content), RouteReport) {
		return RouteReport
	}
	return RouteGeneral
}
