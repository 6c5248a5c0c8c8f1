package imagegen

import (
	"context"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/retry"
)

// Client runs a batch of prompts through a single provider, one call per
// prompt. A failed prompt never aborts the batch: its slot keeps a
// GeneratedImage entry with the failure reason so the package reports
// partial success index by index.
type Client struct {
	provider Provider
	params   Params
	retryCfg retry.Config
	logger   logger.Logger
}

// NewClient creates an image client for the configured provider.
func NewClient(provider Provider, cfg config.ImageConfig, log logger.Logger) *Client {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.MaxRetries + 1
	return &Client{
		provider: provider,
		params:   Params{Width: cfg.Width, Height: cfg.Height},
		retryCfg: retryCfg,
		logger:   log,
	}
}

// Generate produces one entry per prompt, preserving order. Transient
// provider errors are retried with backoff; a prompt that still fails gets
// an entry with Error set and no image data.
func (c *Client) Generate(ctx context.Context, prompts []string) []domain.GeneratedImage {
	results := make([]domain.GeneratedImage, len(prompts))

	for i, prompt := range prompts {
		entry := domain.GeneratedImage{Prompt: prompt, Provider: c.provider.Name()}

		var img *Image
		err := retry.Do(ctx, c.retryCfg, func() error {
			var genErr error
			img, genErr = c.provider.Generate(ctx, prompt, c.params)
			return genErr
		})
		if err != nil {
			genErr := &domain.ImageGenerationError{
				Provider: c.provider.Name(),
				Prompt:   prompt,
				Err:      err,
			}
			c.logger.Error("image generation failed",
				logger.String("provider", c.provider.Name()),
				logger.Int("prompt_index", i),
				logger.Error(genErr))
			entry.Error = err.Error()
		} else {
			entry.URL = img.URL
			entry.Base64 = img.Base64
		}

		results[i] = entry
	}

	return results
}
