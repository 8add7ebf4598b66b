package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/scoutlens/scoutlens/internal/llm"
)

type mockGateway struct {
	completeFn     func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
	toolCompleteFn func(ctx context.Context, req llm.ToolRequest) (*llm.CompletionResponse, error)
	completeCalls  int
	toolCalls      int
}

func (m *mockGateway) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.completeCalls++
	if m.completeFn == nil {
		return &llm.CompletionResponse{Content: "{}"}, nil
	}
	return m.completeFn(ctx, req)
}

func (m *mockGateway) CompleteStream(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error) {
	return nil, errors.New("streaming not supported by mock")
}

func (m *mockGateway) ToolComplete(ctx context.Context, req llm.ToolRequest) (*llm.CompletionResponse, error) {
	m.toolCalls++
	if m.toolCompleteFn == nil {
		return &llm.CompletionResponse{Content: `{"news": []}`}, nil
	}
	return m.toolCompleteFn(ctx, req)
}

func textResponse(content string) func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{Content: content}, nil
	}
}

func TestAnalysisAgentParsesFencedJSON(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse("Here is my analysis:\n```json\n{\"recommendation\": \"sign\"}\n```")}
	agent := NewAnalysisAgent(gw)

	got, err := agent.Analyze(context.Background(), map[string]any{"name": "Jude"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if got["recommendation"] != "sign" {
		t.Errorf("recommendation = %v, want sign", got["recommendation"])
	}
}

func TestAnalysisAgentRequestsSchema(t *testing.T) {
	var captured llm.CompletionRequest
	gw := &mockGateway{completeFn: func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		captured = req
		return &llm.CompletionResponse{Content: "{}"}, nil
	}}
	agent := NewAnalysisAgent(gw)

	if _, err := agent.Analyze(context.Background(), map[string]any{"name": "Jude"}); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != llm.FormatJSONSchema {
		t.Fatalf("expected json_schema response format, got %+v", captured.ResponseFormat)
	}
	if !captured.ResponseFormat.Strict {
		t.Error("expected strict schema")
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != llm.RoleSystem {
		t.Errorf("unexpected messages: %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, `"name": "Jude"`) {
		t.Error("player data missing from user prompt")
	}
}

func TestAnalysisAgentUnparseableOutput(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse("I cannot answer in JSON today.")}
	agent := NewAnalysisAgent(gw)

	got, err := agent.Analyze(context.Background(), map[string]any{"name": "Jude"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty analysis, got %v", got)
	}
}

func TestNewsAgentExtractsArticles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"news key", `{"news": [{"title": "a"}, {"title": "b"}]}`, 2},
		{"bare list", `[{"title": "a"}]`, 1},
		{"fenced", "```json\n{\"news\": [{\"title\": \"a\"}]}\n```", 1},
		{"no list", `{"news": "nothing found"}`, 0},
		{"prose", "no results", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{toolCompleteFn: func(context.Context, llm.ToolRequest) (*llm.CompletionResponse, error) {
				return &llm.CompletionResponse{Content: tt.content}, nil
			}}
			agent := NewNewsAgent(gw, nil)

			got, err := agent.FetchNews(context.Background(), "Jude Bellingham", "Real Madrid")
			if err != nil {
				t.Fatalf("FetchNews() error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d articles, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNewsAgentOffersSearchTool(t *testing.T) {
	var captured llm.ToolRequest
	gw := &mockGateway{toolCompleteFn: func(_ context.Context, req llm.ToolRequest) (*llm.CompletionResponse, error) {
		captured = req
		return &llm.CompletionResponse{Content: `{"news": []}`}, nil
	}}
	agent := NewNewsAgent(gw, nil)

	if _, err := agent.FetchNews(context.Background(), "Jude Bellingham", ""); err != nil {
		t.Fatalf("FetchNews() error: %v", err)
	}
	if len(captured.Tools) != 1 || captured.Tools[0].Name != "web_search" {
		t.Fatalf("expected web_search tool, got %+v", captured.Tools)
	}
	if captured.ToolChoice != llm.ToolChoiceAuto {
		t.Errorf("ToolChoice = %q, want auto", captured.ToolChoice)
	}
	if !strings.Contains(captured.Prompt, "their club") {
		t.Error("empty club should fall back to a generic phrase")
	}
}

func TestNewsAnalysisFallback(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse("not json")}
	agent := NewNewsAnalysisAgent(gw)

	got, err := agent.Analyze(context.Background(), []any{map[string]any{"title": "a"}})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if got["analysis"] != "" {
		t.Errorf("analysis = %v, want empty string", got["analysis"])
	}
}

func TestGeneratorStampsGeneratedAt(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse(`{"report": {}, "news": []}`)}
	agent := NewGeneratorAgent(gw)

	rep, err := agent.Generate(context.Background(), map[string]any{}, []any{}, map[string]any{"analysis": ""})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	stamp, ok := rep["generated_at"].(string)
	if !ok || stamp == "" {
		t.Fatalf("generated_at missing: %v", rep["generated_at"])
	}
	if !strings.HasSuffix(stamp, "Z") {
		t.Errorf("generated_at %q is not UTC-suffixed", stamp)
	}
}

func TestGeneratorKeepsModelTimestamp(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse(`{"report": {}, "news": [], "generated_at": "2026-01-02T03:04:05Z"}`)}
	agent := NewGeneratorAgent(gw)

	rep, err := agent.Generate(context.Background(), map[string]any{}, []any{}, map[string]any{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if rep["generated_at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("generated_at = %v, want model's own timestamp", rep["generated_at"])
	}
}

func TestGeneratorReducedReport(t *testing.T) {
	gw := &mockGateway{completeFn: textResponse("the model rambled instead of answering")}
	agent := NewGeneratorAgent(gw)

	analysis := map[string]any{
		"player_info":       map[string]any{"name": "Jude Bellingham"},
		"executive_summary": "elite midfielder",
		"recommendation":    "sign",
		"strengths":         []any{"pressing"},
	}
	news := []any{map[string]any{"title": "transfer talk"}}

	rep, err := agent.Generate(context.Background(), analysis, news, map[string]any{"analysis": "market value rising"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	body, ok := rep["report"].(map[string]any)
	if !ok {
		t.Fatalf("reduced report has no report body: %v", rep)
	}
	if body["executive_summary"] != "elite midfielder" || body["recommendation"] != "sign" {
		t.Errorf("analysis sections not carried over: %v", body)
	}
	if body["news_context"] != "market value rising" {
		t.Errorf("news_context = %v", body["news_context"])
	}
	if info, _ := rep["player_info"].(map[string]any); info["name"] != "Jude Bellingham" {
		t.Errorf("player_info not carried over: %v", rep["player_info"])
	}
	if articles, _ := rep["news"].([]any); len(articles) != 1 {
		t.Errorf("news articles not carried over: %v", rep["news"])
	}
	if rep["generated_at"] == "" {
		t.Error("reduced report missing generated_at")
	}
}

func newTestOrchestrator(analysisGW, newsGW, newsAnalysisGW, generatorGW llm.Gateway) *Orchestrator {
	return NewOrchestrator(
		NewAnalysisAgent(analysisGW),
		NewNewsAgent(newsGW, nil),
		NewNewsAnalysisAgent(newsAnalysisGW),
		NewGeneratorAgent(generatorGW),
	)
}

func TestOrchestratorFullRun(t *testing.T) {
	analysisGW := &mockGateway{completeFn: textResponse(`{"recommendation": "sign", "player_info": {"name": "Jude Bellingham"}}`)}
	newsGW := &mockGateway{toolCompleteFn: func(context.Context, llm.ToolRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{Content: `{"news": [{"title": "fit again"}]}`}, nil
	}}
	newsAnalysisGW := &mockGateway{completeFn: textResponse(`{"analysis": "positive"}`)}
	generatorGW := &mockGateway{completeFn: textResponse(`{"player_info": {"name": "Jude Bellingham"}, "report": {"recommendation": "sign"}, "news": [], "generated_at": ""}`)}

	o := newTestOrchestrator(analysisGW, newsGW, newsAnalysisGW, generatorGW)
	rep, err := o.GeneratePlayerReport(context.Background(), map[string]any{
		"player_info": map[string]any{"name": "Jude Bellingham", "club": "Real Madrid"},
	}, "", "")
	if err != nil {
		t.Fatalf("GeneratePlayerReport() error: %v", err)
	}
	if analysisGW.completeCalls != 1 || newsGW.toolCalls != 1 || newsAnalysisGW.completeCalls != 1 || generatorGW.completeCalls != 1 {
		t.Errorf("agent call counts: analysis=%d news=%d newsAnalysis=%d generator=%d",
			analysisGW.completeCalls, newsGW.toolCalls, newsAnalysisGW.completeCalls, generatorGW.completeCalls)
	}
	if rep["generated_at"] == "" {
		t.Error("final report missing generated_at")
	}
}

func TestOrchestratorRequiresPlayerName(t *testing.T) {
	o := newTestOrchestrator(&mockGateway{}, &mockGateway{}, &mockGateway{}, &mockGateway{})

	_, err := o.GeneratePlayerReport(context.Background(), map[string]any{"position": "midfielder"}, "", "")
	if !errors.Is(err, ErrNoPlayerName) {
		t.Fatalf("error = %v, want ErrNoPlayerName", err)
	}
}

func TestOrchestratorNameAndClubOverrides(t *testing.T) {
	analysisGW := &mockGateway{completeFn: textResponse(`{"recommendation": "sign"}`)}
	var captured llm.ToolRequest
	newsGW := &mockGateway{toolCompleteFn: func(_ context.Context, req llm.ToolRequest) (*llm.CompletionResponse, error) {
		captured = req
		return &llm.CompletionResponse{Content: `{"news": []}`}, nil
	}}
	generatorGW := &mockGateway{completeFn: textResponse(`{"report": {}, "news": []}`)}

	o := newTestOrchestrator(analysisGW, newsGW, &mockGateway{}, generatorGW)
	_, err := o.GeneratePlayerReport(context.Background(), map[string]any{
		"player_info": map[string]any{"name": "Doc Name", "club": "Doc FC"},
	}, "Jamal Musiala", "Bayern Munich")
	if err != nil {
		t.Fatalf("GeneratePlayerReport() error: %v", err)
	}

	if !strings.Contains(captured.Prompt, "Jamal Musiala") || !strings.Contains(captured.Prompt, "Bayern Munich") {
		t.Errorf("explicit name/club not used: %q", captured.Prompt)
	}
	if strings.Contains(captured.Prompt, "Doc Name") {
		t.Errorf("document name used despite explicit override: %q", captured.Prompt)
	}

	// An explicit name also satisfies validation for nameless documents.
	if _, err := o.GeneratePlayerReport(context.Background(), map[string]any{"position": "midfielder"}, "Jamal Musiala", ""); err != nil {
		t.Errorf("explicit name should pass validation: %v", err)
	}
}

func TestOrchestratorNewsFailureDegrades(t *testing.T) {
	analysisGW := &mockGateway{completeFn: textResponse(`{"recommendation": "monitor"}`)}
	newsGW := &mockGateway{toolCompleteFn: func(context.Context, llm.ToolRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("search backend down")
	}}
	newsAnalysisGW := &mockGateway{}

	var captured llm.CompletionRequest
	generatorGW := &mockGateway{completeFn: func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		captured = req
		return &llm.CompletionResponse{Content: `{"report": {}, "news": []}`}, nil
	}}

	o := newTestOrchestrator(analysisGW, newsGW, newsAnalysisGW, generatorGW)
	rep, err := o.GeneratePlayerReport(context.Background(), map[string]any{"name": "Jamal Musiala"}, "", "")
	if err != nil {
		t.Fatalf("GeneratePlayerReport() error: %v", err)
	}
	if rep == nil {
		t.Fatal("expected a degraded report")
	}
	if newsAnalysisGW.completeCalls != 0 {
		t.Error("news analysis should be skipped when there are no articles")
	}
	if !strings.Contains(captured.Messages[1].Content, "[]") {
		t.Error("generator should receive an empty article list")
	}
}

func TestOrchestratorAnalysisFailureAborts(t *testing.T) {
	analysisGW := &mockGateway{completeFn: func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("provider unavailable")
	}}
	generatorGW := &mockGateway{}

	o := newTestOrchestrator(analysisGW, &mockGateway{}, &mockGateway{}, generatorGW)
	_, err := o.GeneratePlayerReport(context.Background(), map[string]any{"name": "Jamal Musiala"}, "", "")
	if err == nil {
		t.Fatal("expected error when analysis fails")
	}
	if generatorGW.completeCalls != 0 {
		t.Error("generator must not run after a failed analysis")
	}
}

func TestPlayerIdentity(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		wantName string
		wantClub string
	}{
		{"nested", map[string]any{"player_info": map[string]any{"name": "A", "club": "B"}}, "A", "B"},
		{"top level", map[string]any{"name": "A", "club": "B"}, "A", "B"},
		{"mixed", map[string]any{"player_info": map[string]any{"name": "A"}, "club": "B"}, "A", "B"},
		{"missing", map[string]any{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, club := playerIdentity(tt.data)
			if name != tt.wantName || club != tt.wantClub {
				t.Errorf("playerIdentity() = (%q, %q), want (%q, %q)", name, club, tt.wantName, tt.wantClub)
			}
		})
	}
}
