package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNoPlayerName is returned when the player document carries no name to
// run the pipeline for.
var ErrNoPlayerName = errors.New("player data has no player name")

// Orchestrator drives the report pipeline: analysis and news run
// concurrently, their outputs feed the news analysis and the final
// generator. Analysis and generation failures abort the run; the news
// branch only degrades the report.
type Orchestrator struct {
	analysis     *AnalysisAgent
	news         *NewsAgent
	newsAnalysis *NewsAnalysisAgent
	generator    *GeneratorAgent

	// Progress, when set, is called at each stage boundary with a short
	// human-readable description.
	Progress func(stage string)
}

func NewOrchestrator(analysis *AnalysisAgent, news *NewsAgent, newsAnalysis *NewsAnalysisAgent, generator *GeneratorAgent) *Orchestrator {
	return &Orchestrator{
		analysis:     analysis,
		news:         news,
		newsAnalysis: newsAnalysis,
		generator:    generator,
	}
}

// GeneratePlayerReport runs the full pipeline over a player document and
// returns the final report. playerName and club override the identity
// carried in the document; when empty they are resolved from it instead.
func (o *Orchestrator) GeneratePlayerReport(ctx context.Context, playerData map[string]any, playerName, club string) (map[string]any, error) {
	docName, docClub := playerIdentity(playerData)
	name := playerName
	if name == "" {
		name = docName
	}
	if club == "" {
		club = docClub
	}
	if name == "" {
		return nil, ErrNoPlayerName
	}

	o.stage("analyzing player data and fetching news")

	var (
		wg          sync.WaitGroup
		analysisRes map[string]any
		analysisErr error
		articles    []any
		newsErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysisRes, analysisErr = o.analysis.Analyze(ctx, playerData)
	}()
	go func() {
		defer wg.Done()
		articles, newsErr = o.news.FetchNews(ctx, name, club)
	}()
	wg.Wait()

	if analysisErr != nil {
		return nil, fmt.Errorf("analysis agent failed: %w", analysisErr)
	}
	if newsErr != nil {
		log.Printf("report: news agent failed, continuing without news: %v", newsErr)
		articles = []any{}
	}

	o.stage("analyzing news impact")
	newsAnalysis := map[string]any{"analysis": ""}
	if len(articles) > 0 {
		na, err := o.newsAnalysis.Analyze(ctx, articles)
		if err != nil {
			log.Printf("report: news analysis failed, continuing without it: %v", err)
		} else {
			newsAnalysis = na
		}
	}

	o.stage("writing final report")
	rep, err := o.generator.Generate(ctx, analysisRes, articles, newsAnalysis)
	if err != nil {
		return nil, fmt.Errorf("generating final report: %w", err)
	}
	return rep, nil
}

func (o *Orchestrator) stage(s string) {
	if o.Progress != nil {
		o.Progress(s)
	}
}

// playerIdentity pulls the player's name and club out of the document,
// checking the nested player_info object before the top level.
func playerIdentity(playerData map[string]any) (name, club string) {
	if info, ok := playerData["player_info"].(map[string]any); ok {
		name, _ = info["name"].(string)
		club, _ = info["club"].(string)
	}
	if name == "" {
		name, _ = playerData["name"].(string)
	}
	if club == "" {
		club, _ = playerData["club"].(string)
	}
	return name, club
}
