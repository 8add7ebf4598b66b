package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/scoutlens/scoutlens/internal/extract"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
)

// AnalysisAgent turns a player's raw data document into a structured
// scouting assessment.
type AnalysisAgent struct {
	gw llm.Gateway
}

func NewAnalysisAgent(gw llm.Gateway) *AnalysisAgent {
	return &AnalysisAgent{gw: gw}
}

// Analyze runs the structured analysis over the player document. When the
// model answers with something that is not parseable JSON the agent logs
// the payload and returns an empty assessment rather than failing.
func (a *AnalysisAgent) Analyze(ctx context.Context, playerData map[string]any) (map[string]any, error) {
	data, err := json.MarshalIndent(playerData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding player data: %w", err)
	}

	b := prompt.NewBuilder().
		System(analysisSystemPrompt).
		User(prompt.Render(analysisUserPrompt, map[string]string{"player_data": string(data)}))

	resp, err := a.gw.Complete(ctx, llm.CompletionRequest{
		Messages: b.Build(),
		ResponseFormat: &llm.ResponseFormat{
			Type:       llm.FormatJSONSchema,
			SchemaName: "player_analysis",
			Schema:     analysisSchema,
			Strict:     true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis completion: %w", err)
	}

	obj, ok := extract.Object(resp.Content)
	if !ok {
		log.Printf("report: analysis response was not valid JSON: %s", truncate(resp.Content, 200))
		return map[string]any{}, nil
	}
	return obj, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
