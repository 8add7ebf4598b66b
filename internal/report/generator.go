package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/scoutlens/scoutlens/internal/extract"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
)

// GeneratorAgent merges the analysis, the news list and the news analysis
// into the final report document.
type GeneratorAgent struct {
	gw llm.Gateway
}

func NewGeneratorAgent(gw llm.Gateway) *GeneratorAgent {
	return &GeneratorAgent{gw: gw}
}

// Generate produces the final report. When the model output cannot be
// parsed it falls back to a reduced report assembled from the analysis
// alone, so a report generation that got this far never comes back empty.
func (a *GeneratorAgent) Generate(ctx context.Context, playerAnalysis map[string]any, newsArticles []any, newsAnalysis map[string]any) (map[string]any, error) {
	analysisJSON, err := json.MarshalIndent(playerAnalysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding player analysis: %w", err)
	}
	articlesJSON, err := json.MarshalIndent(newsArticles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding news articles: %w", err)
	}
	newsAnalysisJSON, err := json.MarshalIndent(newsAnalysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding news analysis: %w", err)
	}

	b := prompt.NewBuilder().
		System(generatorSystemPrompt).
		User(prompt.Render(generatorUserPrompt, map[string]string{
			"player_analysis": string(analysisJSON),
			"news_articles":   string(articlesJSON),
			"news_analysis":   string(newsAnalysisJSON),
		}))

	resp, err := a.gw.Complete(ctx, llm.CompletionRequest{
		Messages: b.Build(),
		ResponseFormat: &llm.ResponseFormat{
			Type:       llm.FormatJSONSchema,
			SchemaName: "player_report",
			Schema:     reportSchema,
			Strict:     true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("report completion: %w", err)
	}

	rep, ok := extract.Object(resp.Content)
	if !ok {
		log.Printf("report: generator response was not valid JSON, building reduced report: %s", truncate(resp.Content, 200))
		rep = reducedReport(playerAnalysis, newsArticles, newsAnalysis)
	}
	stampGeneratedAt(rep)
	return rep, nil
}

// reducedReport carries the analysis sections over unchanged and marks
// the news context as unavailable.
func reducedReport(playerAnalysis map[string]any, newsArticles []any, newsAnalysis map[string]any) map[string]any {
	body := map[string]any{"news_context": "News analysis unavailable."}
	for _, key := range []string{
		"executive_summary",
		"player_development",
		"breakout_analysis",
		"valuation_insights",
		"transfer_fee_analysis",
		"key_statistics",
		"strengths",
		"weaknesses",
		"recommendation",
	} {
		if v, ok := playerAnalysis[key]; ok {
			body[key] = v
		}
	}
	if v, ok := newsAnalysis["analysis"].(string); ok && v != "" {
		body["news_context"] = v
	}

	rep := map[string]any{
		"report": body,
		"news":   newsArticles,
	}
	if info, ok := playerAnalysis["player_info"]; ok {
		rep["player_info"] = info
	} else {
		rep["player_info"] = map[string]any{}
	}
	return rep
}

func stampGeneratedAt(rep map[string]any) {
	if v, ok := rep["generated_at"].(string); ok && v != "" {
		return
	}
	rep["generated_at"] = time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
