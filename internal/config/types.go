package config

import "github.com/scoutlens/scoutlens/internal/llm"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// AgentsConfig holds the per-agent model configuration for every agent in
// the report and chatbot pipelines.
type AgentsConfig struct {
	Analysis       llm.AgentConfig `yaml:"analysis" koanf:"analysis"`
	News           llm.AgentConfig `yaml:"news" koanf:"news"`
	NewsAnalysis   llm.AgentConfig `yaml:"news_analysis" koanf:"news_analysis"`
	Generator      llm.AgentConfig `yaml:"generator" koanf:"generator"`
	QueryRewriter  llm.AgentConfig `yaml:"query_rewriter" koanf:"query_rewriter"`
	QueryRouter    llm.AgentConfig `yaml:"query_router" koanf:"query_router"`
	GeneralChatbot llm.AgentConfig `yaml:"general_chatbot" koanf:"general_chatbot"`
	ReportAnswer   llm.AgentConfig `yaml:"report_answer" koanf:"report_answer"`
}

// Config is the top-level scoutlens configuration, corresponding to
// .scoutlens.yml.
type Config struct {
	// APIKeyEnv names the environment variable holding the OpenAI API key.
	// The key itself is never written to the config file.
	APIKeyEnv string       `yaml:"api_key_env" koanf:"api_key_env"`
	DataDir   string       `yaml:"data_dir" koanf:"data_dir"`
	DBPath    string       `yaml:"db_path" koanf:"db_path"`
	Server    ServerConfig `yaml:"server" koanf:"server"`
	Agents    AgentsConfig `yaml:"agents" koanf:"agents"`
}
