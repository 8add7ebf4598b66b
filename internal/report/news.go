package report

import (
	"context"
	"fmt"
	"log"

	"github.com/scoutlens/scoutlens/internal/extract"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
	"github.com/scoutlens/scoutlens/internal/search"
)

// NewsAgent fetches recent articles about a player. The model drives a
// web_search tool and condenses the hits into structured articles.
type NewsAgent struct {
	gw     llm.Gateway
	search *search.Client
}

func NewNewsAgent(gw llm.Gateway, sc *search.Client) *NewsAgent {
	return &NewsAgent{gw: gw, search: sc}
}

// FetchNews returns a list of article objects for the player. An empty
// list is a valid outcome; the caller decides how to degrade.
func (a *NewsAgent) FetchNews(ctx context.Context, playerName, club string) ([]any, error) {
	if club == "" {
		club = "their club"
	}

	resp, err := a.gw.ToolComplete(ctx, llm.ToolRequest{
		Prompt: prompt.Render(newsUserPrompt, map[string]string{
			"player_name": playerName,
			"club":        club,
		}),
		Tools:      []llm.Tool{search.Tool(a.search)},
		ToolChoice: llm.ToolChoiceAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("news completion: %w", err)
	}

	// Preferred shape is {"news": [...]}; a bare array is accepted too.
	if val, ok := extract.JSONKey(resp.Content, "news"); ok {
		if list, isList := val.([]any); isList {
			return list, nil
		}
	}
	log.Printf("report: news response had no article list: %s", truncate(resp.Content, 200))
	return []any{}, nil
}
