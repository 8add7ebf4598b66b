package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// modelChoices offered by the wizard. Any other model can be set by editing
// the config file afterwards.
var modelChoices = []string{
	"gpt-5-mini",
	"gpt-5.1",
	"gpt-4o",
	"gpt-4o-mini",
}

// RunWizard runs an interactive configuration wizard, writes the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to scoutlens! Let's configure the service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default model for all agents.
	modelPrompt := promptui.Select{
		Label: "Default model for all agents",
		Items: modelChoices,
	}
	_, model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	setAllModels(cfg, model)

	// 2. API key environment variable.
	keyPrompt := promptui.Prompt{
		Label:   "Environment variable holding your OpenAI API key",
		Default: cfg.APIKeyEnv,
	}
	keyEnv, err := keyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api key env: %w", err)
	}
	cfg.APIKeyEnv = keyEnv

	// 3. Player data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Directory containing player data (players.csv + player JSON docs)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration written to %s\n", path)

	return cfg, nil
}

// setAllModels applies one model identifier to every agent.
func setAllModels(cfg *Config, model string) {
	cfg.Agents.Analysis.Model = model
	cfg.Agents.News.Model = model
	cfg.Agents.NewsAnalysis.Model = model
	cfg.Agents.Generator.Model = model
	cfg.Agents.QueryRewriter.Model = model
	cfg.Agents.QueryRouter.Model = model
	cfg.Agents.GeneralChatbot.Model = model
	cfg.Agents.ReportAnswer.Model = model
}
