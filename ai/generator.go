// Package ai talks to the text-generation provider that proposes dishes.
package ai

import (
	"context"
	"errors"
	"fmt"

	"vacation-menu-api/config"
)

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Closer is implemented by generators holding network resources.
type Closer interface {
	Close() error
}

const systemPrompt = "You are a practical holiday cook who plans shared meals. You always answer with a single valid JSON object and nothing else."

var ErrNotConfigured = errors.New("text generation provider is not configured")

// NewGenerator builds the generator selected by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	if cfg.APIKey() == "" {
		return nil, fmt.Errorf("%w: missing API key for %s", ErrNotConfigured, cfg.Provider)
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
}

// DisabledGenerator fails every call. It stands in when no provider is configured
// so the rest of the API keeps working.
type DisabledGenerator struct {
	Reason error
}

func (g DisabledGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g.Reason != nil {
		return "", g.Reason
	}
	return "", ErrNotConfigured
}
