// Package config provides environment-driven configuration for the service.
package config

import (
	"fmt"
	"os"
)

// Default model deployments. Overridable per environment so a different Azure
// deployment name or Groq model can be selected without a rebuild.
const (
	defaultAPIVersion     = "2024-02-15-preview"
	defaultChatModel      = "gpt-35-turbo-16k"
	defaultChatModelLarge = "gpt-4-32k"
	defaultFastModel      = "mixtral-8x7b-32768"
	defaultEmbeddingModel = "text-embedding-ada-002"
	defaultIndexPath      = "extracts.db"
)

// Models names the model deployment used for each call class.
type Models struct {
	Chat      string // classification and structured generation
	ChatLarge string // default streaming backend
	Fast      string // alternative high-throughput streaming backend
	Embedding string // retrieval query embeddings
}

// Config holds everything the process needs at startup. Values are read once;
// the struct is treated as immutable afterwards.
type Config struct {
	// APIKey is the shared secret required on every inbound request.
	APIKey string

	// Azure OpenAI (primary provider).
	AzureAPIKey     string
	AzureEndpoint   string
	AzureAPIVersion string

	// Groq (alternative streaming provider).
	GroqAPIKey string

	// IndexPath is the SQLite file holding the report-extract vector index.
	IndexPath string

	Models Models
}

// Load reads configuration from the environment. Missing required values are
// reported together so a misconfigured deployment fails fast with one message.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:          os.Getenv("API_KEY"),
		AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", defaultAPIVersion),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		IndexPath:       getEnv("INDEX_PATH", defaultIndexPath),
		Models: Models{
			Chat:      getEnv("CHAT_MODEL", defaultChatModel),
			ChatLarge: getEnv("CHAT_MODEL_LARGE", defaultChatModelLarge),
			Fast:      getEnv("FAST_MODEL", defaultFastModel),
			Embedding: getEnv("EMBEDDING_MODEL", defaultEmbeddingModel),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required values are present.
func (c *Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if c.AzureAPIKey == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if c.AzureEndpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if c.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
