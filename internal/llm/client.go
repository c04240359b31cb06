package llm

import (
	"context"
	"fmt"
)

// ChatRequest is a single system+user exchange with the model.
type ChatRequest struct {
	System          string
	User            string
	Tier            ModelTier
	Temperature     float32
	MaxOutputTokens int
}

// Client is an abstraction over LLM providers.
// Implementations never retry: a failed call is returned to the caller as is.
type Client interface {
	// Chat returns the model's reply text verbatim
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// GenerateJSON asks for a JSON object reply and strips any markdown wrapper
	GenerateJSON(ctx context.Context, req ChatRequest) (string, error)
	// GetModel returns the provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
