package config

// DefaultSystemPrompt frames the assistant before any retrieved content is
// appended, so the persona cannot be overridden by corpus text.
const DefaultSystemPrompt = "You are a helpful assistant answering questions about this " +
	"project's documentation. Use the documentation excerpts provided in the " +
	"conversation to ground your answers. If the excerpts do not cover the " +
	"question, say so instead of guessing."

// DefaultExcludes are glob patterns skipped during ingestion by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"README.md",
	"CHANGELOG.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DocsDir:           "docs",
		StorePath:         ".docschat",
		Port:              3001,
		TopK:              10,
		ContextWords:      1500,
		MaxEmbedWords:     6000,
		SystemPrompt:      DefaultSystemPrompt,
		SidebarFile:       "sidebar.yml",
		Include:           []string{"**/*.md", "**/*.mdx"},
		Exclude:           DefaultExcludes,
		RequestTimeoutSec: 60,
	}
}
