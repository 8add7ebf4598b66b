// Package config loads, validates and persists the scoutlens configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCOUTLENS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SCOUTLENS_DATA_DIR -> data_dir, etc.
	if err := k.Load(env.Provider("SCOUTLENS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SCOUTLENS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.APIKeyEnv == "" {
		return fmt.Errorf("api_key_env is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	for name, agent := range map[string]struct{ Model string }{
		"analysis":        {c.Agents.Analysis.Model},
		"news":            {c.Agents.News.Model},
		"news_analysis":   {c.Agents.NewsAnalysis.Model},
		"generator":       {c.Agents.Generator.Model},
		"query_rewriter":  {c.Agents.QueryRewriter.Model},
		"query_router":    {c.Agents.QueryRouter.Model},
		"general_chatbot": {c.Agents.GeneralChatbot.Model},
		"report_answer":   {c.Agents.ReportAnswer.Model},
	} {
		if agent.Model == "" {
			return fmt.Errorf("agents.%s.model is required", name)
		}
	}

	return nil
}

// APIKey reads the OpenAI API key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}
