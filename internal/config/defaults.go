package config

import "github.com/scoutlens/scoutlens/internal/llm"

// DefaultModel is used for every agent unless overridden.
const DefaultModel = llm.DefaultModel

// DefaultConfig returns a Config with sensible defaults. Every agent runs
// the default model; the news agent searches with low reasoning effort and
// the two conversational agents stream.
func DefaultConfig() *Config {
	return &Config{
		APIKeyEnv: "OPENAI_API_KEY",
		DataDir:   "data",
		DBPath:    ".scoutlens/scoutlens.db",
		Server: ServerConfig{
			Port: 8080,
		},
		Agents: AgentsConfig{
			Analysis: llm.AgentConfig{
				Model: DefaultModel,
			},
			News: llm.AgentConfig{
				Model:           DefaultModel,
				ReasoningEffort: "low",
			},
			NewsAnalysis: llm.AgentConfig{
				Model: DefaultModel,
			},
			Generator: llm.AgentConfig{
				Model: DefaultModel,
			},
			QueryRewriter: llm.AgentConfig{
				Model:     DefaultModel,
				Verbosity: "low",
			},
			QueryRouter: llm.AgentConfig{
				Model:     DefaultModel,
				Verbosity: "low",
			},
			GeneralChatbot: llm.AgentConfig{
				Model:  DefaultModel,
				Stream: true,
			},
			ReportAnswer: llm.AgentConfig{
				Model:  DefaultModel,
				Stream: true,
			},
		},
	}
}
