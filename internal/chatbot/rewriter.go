package chatbot

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/scoutlens/scoutlens/internal/extract"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
	"github.com/scoutlens/scoutlens/internal/session"
)

// rewriteWindow is how many trailing turns of history the rewriter sees.
const rewriteWindow = 6

var rewriteSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"rewritten_query": {"type": "string"}
	},
	"required": ["rewritten_query"],
	"additionalProperties": false
}`)

// QueryRewriter turns a context-dependent chat message into a
// self-contained query. It never fails: any problem falls back to the
// original message.
type QueryRewriter struct {
	gw llm.Gateway
}

func NewQueryRewriter(gw llm.Gateway) *QueryRewriter {
	return &QueryRewriter{gw: gw}
}

func (r *QueryRewriter) Rewrite(ctx context.Context, query string, history []session.Turn) string {
	if len(history) == 0 {
		return query
	}

	b := prompt.NewBuilder().
		System(rewriteSystemPrompt).
		User(prompt.Render(rewriteUserPrompt, map[string]string{
			"history": renderHistory(lastTurns(history, rewriteWindow)),
			"query":   query,
		}))

	resp, err := r.gw.Complete(ctx, llm.CompletionRequest{
		Messages: b.Build(),
		ResponseFormat: &llm.ResponseFormat{
			Type:       llm.FormatJSONSchema,
			SchemaName: "query_rewrite",
			Schema:     rewriteSchema,
			Strict:     true,
		},
	})
	if err != nil {
		log.Printf("chatbot: query rewrite failed, using original query: %v", err)
		return query
	}

	if val, ok := extract.JSONKey(resp.Content, "rewritten_query"); ok {
		if rewritten, isStr := val.(string); isStr && strings.TrimSpace(rewritten) != "" {
			return strings.TrimSpace(rewritten)
		}
	}
	log.Printf("chatbot: rewrite response unusable, using original query: %s", resp.Content)
	return query
}

// lastTurns returns at most n trailing turns.
func lastTurns(turns []session.Turn, n int) []session.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// renderHistory flattens turns into "role: content" lines.
func renderHistory(turns []session.Turn) string {
	if len(turns) == 0 {
		return "(no prior messages)"
	}
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}
