package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := DefaultConfig()
	if cfg.Provider != want.Provider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, want.Provider)
	}
	if cfg.Model != want.Model {
		t.Errorf("Model = %q, want %q", cfg.Model, want.Model)
	}
	if cfg.Port != want.Port {
		t.Errorf("Port = %d, want %d", cfg.Port, want.Port)
	}
	if cfg.TopK != want.TopK {
		t.Errorf("TopK = %d, want %d", cfg.TopK, want.TopK)
	}
	if cfg.ContextWords != want.ContextWords {
		t.Errorf("ContextWords = %d, want %d", cfg.ContextWords, want.ContextWords)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docschat.yml")
	content := `provider: ollama
model: llama3.2
docs_dir: ./handbook
port: 8090
top_k: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("Provider = %q, want ollama", cfg.Provider)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("Model = %q, want llama3.2", cfg.Model)
	}
	if cfg.DocsDir != "./handbook" {
		t.Errorf("DocsDir = %q", cfg.DocsDir)
	}
	if cfg.Port != 8090 {
		t.Errorf("Port = %d, want 8090", cfg.Port)
	}
	if cfg.TopK != 4 {
		t.Errorf("TopK = %d, want 4", cfg.TopK)
	}
	// Untouched keys keep their defaults.
	if cfg.ContextWords != DefaultConfig().ContextWords {
		t.Errorf("ContextWords = %d, want default", cfg.ContextWords)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docschat.yml")
	if err := os.WriteFile(path, []byte("model: from-file\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("DOCSCHAT_MODEL", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model = %q, want from-env", cfg.Model)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docschat.yml")
	if err := os.WriteFile(path, []byte("provider: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docschat.yml")

	cfg := DefaultConfig()
	cfg.Model = "gpt-4o"
	cfg.DocsDir = "./docs"
	cfg.Include = []string{"guides/**"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Model != "gpt-4o" {
		t.Errorf("Model = %q", loaded.Model)
	}
	if len(loaded.Include) != 1 || loaded.Include[0] != "guides/**" {
		t.Errorf("Include = %v", loaded.Include)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.DocsDir = "./docs"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing provider", func(c *Config) { c.Provider = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }},
		{"missing model", func(c *Config) { c.Model = "" }},
		{"unknown embedding provider", func(c *Config) { c.EmbeddingProvider = "hugging" }},
		{"missing docs dir", func(c *Config) { c.DocsDir = "" }},
		{"missing store path", func(c *Config) { c.StorePath = "" }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"oversized port", func(c *Config) { c.Port = 70000 }},
		{"zero top_k", func(c *Config) { c.TopK = 0 }},
		{"negative context_words", func(c *Config) { c.ContextWords = -1 }},
		{"zero max_embed_words", func(c *Config) { c.MaxEmbedWords = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai env var = %q", got)
	}
	if got := APIKeyEnvVar(ProviderOllama); got != "" {
		t.Errorf("ollama env var = %q, want empty", got)
	}
}
