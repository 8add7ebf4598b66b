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

// NewsAnalysisAgent condenses a set of news articles into one short
// analysis of their impact on the player's outlook.
type NewsAnalysisAgent struct {
	gw llm.Gateway
}

func NewNewsAnalysisAgent(gw llm.Gateway) *NewsAnalysisAgent {
	return &NewsAnalysisAgent{gw: gw}
}

func (a *NewsAnalysisAgent) Analyze(ctx context.Context, articles []any) (map[string]any, error) {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding news articles: %w", err)
	}

	b := prompt.NewBuilder().
		System(newsAnalysisSystemPrompt).
		User(prompt.Render(newsAnalysisUserPrompt, map[string]string{"news_articles": string(data)}))

	resp, err := a.gw.Complete(ctx, llm.CompletionRequest{
		Messages: b.Build(),
		ResponseFormat: &llm.ResponseFormat{
			Type:       llm.FormatJSONSchema,
			SchemaName: "news_analysis",
			Schema:     newsAnalysisSchema,
			Strict:     true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("news analysis completion: %w", err)
	}

	obj, ok := extract.Object(resp.Content)
	if !ok {
		log.Printf("report: news analysis response was not valid JSON: %s", truncate(resp.Content, 200))
		return map[string]any{"analysis": ""}, nil
	}
	return obj, nil
}
