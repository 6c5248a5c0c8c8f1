// Package llm abstracts the language model boundary behind a single-shot
// completion interface so the pipeline stays provider-agnostic.
package llm

import (
	"context"
	"fmt"

	"github.com/jonesrussell/instagen/internal/config"
)

// Prompt is one rendered request to the model.
type Prompt struct {
	System string
	User   string
}

// Client performs a single blocking completion call. Implementations do not
// retry; failure policy belongs to the caller.
type Client interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// New selects a Client implementation from configuration.
func New(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.LLMProviderAnthropic:
		return NewAnthropicClient(cfg)
	case config.LLMProviderOpenAI:
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
