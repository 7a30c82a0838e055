package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/docschat/docschat/internal/config"
	"github.com/docschat/docschat/internal/embeddings"
	"github.com/docschat/docschat/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docschat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, os.Getenv("OLLAMA_HOST")), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	}
}

// createProviderFromConfig creates a completion provider based on config.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// newLifecycleLogger builds the request-lifecycle logger, teeing to the
// configured append-only log file when one is set. The returned closer is
// a no-op when no file is open.
func newLifecycleLogger(cfg *config.Config) (*log.Logger, func() error, error) {
	out := io.Writer(os.Stderr)
	closer := func() error { return nil }

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closer = f.Close
	}

	return log.New(out, "docschat: ", log.LstdFlags), closer, nil
}
