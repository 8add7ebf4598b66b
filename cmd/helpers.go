package cmd

import (
	"fmt"

	"github.com/scoutlens/scoutlens/internal/chatbot"
	"github.com/scoutlens/scoutlens/internal/config"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/report"
	"github.com/scoutlens/scoutlens/internal/search"
	"github.com/scoutlens/scoutlens/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `scoutlens init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// gateway creates one LLM client for an agent configuration.
func gateway(cfg *config.Config, agent llm.AgentConfig) (llm.Gateway, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("API key not found: set the %s environment variable", cfg.APIKeyEnv)
	}
	client, err := llm.NewClient(key, agent)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// buildReportOrchestrator wires the four report agents from config.
func buildReportOrchestrator(cfg *config.Config) (*report.Orchestrator, error) {
	analysisGW, err := gateway(cfg, cfg.Agents.Analysis)
	if err != nil {
		return nil, err
	}
	newsGW, err := gateway(cfg, cfg.Agents.News)
	if err != nil {
		return nil, err
	}
	newsAnalysisGW, err := gateway(cfg, cfg.Agents.NewsAnalysis)
	if err != nil {
		return nil, err
	}
	generatorGW, err := gateway(cfg, cfg.Agents.Generator)
	if err != nil {
		return nil, err
	}

	return report.NewOrchestrator(
		report.NewAnalysisAgent(analysisGW),
		report.NewNewsAgent(newsGW, search.NewClient()),
		report.NewNewsAnalysisAgent(newsAnalysisGW),
		report.NewGeneratorAgent(generatorGW),
	), nil
}

// buildChatOrchestrator wires the chatbot agents from config over a fresh
// in-memory session store.
func buildChatOrchestrator(cfg *config.Config) (*chatbot.Orchestrator, error) {
	rewriterGW, err := gateway(cfg, cfg.Agents.QueryRewriter)
	if err != nil {
		return nil, err
	}
	routerGW, err := gateway(cfg, cfg.Agents.QueryRouter)
	if err != nil {
		return nil, err
	}
	generalGW, err := gateway(cfg, cfg.Agents.GeneralChatbot)
	if err != nil {
		return nil, err
	}
	reportGW, err := gateway(cfg, cfg.Agents.ReportAnswer)
	if err != nil {
		return nil, err
	}

	return chatbot.NewOrchestrator(
		chatbot.NewQueryRewriter(rewriterGW),
		chatbot.NewQueryRouter(routerGW),
		chatbot.NewGeneralAgent(generalGW),
		chatbot.NewReportAnswerAgent(reportGW),
		session.NewStore(),
	), nil
}
