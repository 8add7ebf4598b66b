package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("expected default api_key_env OPENAI_API_KEY, got %q", cfg.APIKeyEnv)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Agents.News.ReasoningEffort != "low" {
		t.Errorf("expected news reasoning effort low, got %q", cfg.Agents.News.ReasoningEffort)
	}
	if !cfg.Agents.GeneralChatbot.Stream || !cfg.Agents.ReportAnswer.Stream {
		t.Error("expected conversational agents to default to streaming")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".scoutlens.yml")

	original := DefaultConfig()
	original.DataDir = "players"
	original.Server.Port = 9090
	original.Agents.Generator.Model = "gpt-5.1"
	temp := 0.3
	original.Agents.Generator.Temperature = &temp

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataDir != "players" {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, "players")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Agents.Generator.Model != "gpt-5.1" {
		t.Errorf("generator model: got %q", loaded.Agents.Generator.Model)
	}
	if loaded.Agents.Generator.Temperature == nil || *loaded.Agents.Generator.Temperature != 0.3 {
		t.Errorf("generator temperature: got %v", loaded.Agents.Generator.Temperature)
	}
	// Untouched agents keep their defaults.
	if loaded.Agents.News.ReasoningEffort != "low" {
		t.Errorf("news reasoning effort lost in round-trip: %q", loaded.Agents.News.ReasoningEffort)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults for missing file, got port %d", cfg.Server.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SCOUTLENS_DATA_DIR", "/srv/players")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/srv/players" {
		t.Errorf("expected env override, got %q", cfg.DataDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = DefaultConfig()
	cfg.Agents.Analysis.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing agent model")
	}

	cfg = DefaultConfig()
	cfg.APIKeyEnv = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing api_key_env")
	}
}
