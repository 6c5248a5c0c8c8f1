// Package imagegen turns image prompts into images through a configurable
// external provider. Each provider has its own wire format; all of them are
// normalized to the same Image shape.
package imagegen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonesrussell/instagen/internal/config"
)

// Params are the generation parameters shared by all providers.
type Params struct {
	Width  int
	Height int
}

// Image is the normalized result of a single generation call.
// Exactly one of URL or Base64 is populated.
type Image struct {
	URL    string
	Base64 string
}

// Provider generates one image for one prompt.
type Provider interface {
	// Name identifies the provider in logs and package entries.
	Name() string
	// Generate performs a single blocking generation call.
	Generate(ctx context.Context, prompt string, params Params) (*Image, error)
}

// NewProvider selects a Provider implementation from configuration.
func NewProvider(cfg config.ImageConfig) (Provider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ImageProviderPollinations:
		return NewPollinations(), nil
	case config.ImageProviderSegmind:
		return NewSegmind(cfg.APIKey, httpClient), nil
	case config.ImageProviderStability:
		return NewStability(cfg.APIKey, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported image provider %q", cfg.Provider)
	}
}
