package config

// ProviderType identifies a remote model provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level docschat configuration, corresponding to .docschat.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DocsDir           string       `yaml:"docs_dir" koanf:"docs_dir"`
	StorePath         string       `yaml:"store_path" koanf:"store_path"`
	Port              int          `yaml:"port" koanf:"port"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	ContextWords      int          `yaml:"context_words" koanf:"context_words"`
	MaxEmbedWords     int          `yaml:"max_embed_words" koanf:"max_embed_words"`
	SystemPrompt      string       `yaml:"system_prompt" koanf:"system_prompt"`
	SidebarFile       string       `yaml:"sidebar_file" koanf:"sidebar_file"`
	LogFile           string       `yaml:"log_file" koanf:"log_file"`
	Include           []string     `yaml:"include" koanf:"include"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
	RequestTimeoutSec int          `yaml:"request_timeout_sec" koanf:"request_timeout_sec"`
}
