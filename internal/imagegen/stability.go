package imagegen

import (
	"context"
	"errors"
	"net/http"
)

const stabilityURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// Stability generates images through the Stability AI REST API.
// Results come back as base64 artifacts.
type Stability struct {
	// URL is overridable for tests.
	URL    string
	apiKey string
	client *http.Client
}

// NewStability creates the stability provider.
func NewStability(apiKey string, client *http.Client) *Stability {
	return &Stability{URL: stabilityURL, apiKey: apiKey, client: client}
}

// Name identifies the provider.
func (s *Stability) Name() string { return "stability" }

type stabilityTextPrompt struct {
	Text string `json:"text"`
}

type stabilityRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	CfgScale    float64               `json:"cfg_scale"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Samples     int                   `json:"samples"`
	Steps       int                   `json:"steps"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

// Generate requests one image and returns it as base64.
func (s *Stability) Generate(ctx context.Context, prompt string, params Params) (*Image, error) {
	req := stabilityRequest{
		TextPrompts: []stabilityTextPrompt{{Text: prompt}},
		CfgScale:    7,
		Width:       params.Width,
		Height:      params.Height,
		Samples:     1,
		Steps:       30,
	}

	var resp stabilityResponse
	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}
	if err := postJSON(ctx, s.client, s.URL, headers, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Artifacts) == 0 {
		return nil, errors.New("stability: empty artifacts in response")
	}
	return &Image{Base64: resp.Artifacts[0].Base64}, nil
}
