package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
)

// OpenAIClient implements Client using the official openai-go SDK (chat
// completions). A custom base URL allows any OpenAI-compatible endpoint.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIClient creates a Client backed by the chat completions API.
func NewOpenAIClient(cfg config.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set llm.api_key or LLM_API_KEY")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends one chat exchange and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}
