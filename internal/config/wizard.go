package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docschat! Let's configure your documentation assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Completion provider.
	providerPrompt := promptui.Select{
		Label: "Select completion provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider

	switch cfg.Provider {
	case ProviderOllama:
		cfg.Model = "llama3"
		cfg.EmbeddingModel = "nomic-embed-text"
	default:
		cfg.Model = "gpt-4o-mini"
		cfg.EmbeddingModel = "text-embedding-3-small"
	}

	// 2. Model override.
	modelPrompt := promptui.Prompt{
		Label:   "Completion model",
		Default: cfg.Model,
	}
	if model, err := modelPrompt.Run(); err == nil && model != "" {
		cfg.Model = model
	}

	// 3. Documentation directory.
	docsPrompt := promptui.Prompt{
		Label:   "Documentation directory",
		Default: cfg.DocsDir,
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("directory is required")
			}
			return nil
		},
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	}
	cfg.DocsDir = docsDir

	if _, err := os.Stat(docsDir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet. Create it before running `docschat ingest`.\n", docsDir)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "API server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", path)
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		fmt.Printf("Remember to set %s before running ingest or serve.\n", envVar)
	}

	return cfg, nil
}
