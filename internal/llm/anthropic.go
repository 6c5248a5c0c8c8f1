package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
)

// AnthropicClient implements Client using the official Anthropic SDK.
type AnthropicClient struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewAnthropicClient creates a Client backed by the Anthropic Messages API.
func NewAnthropicClient(cfg config.LLMConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key missing; set llm.api_key or LLM_API_KEY")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicClient{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends one message exchange and returns the concatenated text blocks.
func (c *AnthropicClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}
