package imagegen

import (
	"context"
	"errors"
	"net/http"
)

const segmindURL = "https://api.segmind.com/v1/sdxl1.0-txt2img"

// Segmind generates images through the Segmind SDXL text-to-image API.
// The API returns base64-encoded images.
type Segmind struct {
	// URL is overridable for tests.
	URL    string
	apiKey string
	client *http.Client
}

// NewSegmind creates the segmind provider.
func NewSegmind(apiKey string, client *http.Client) *Segmind {
	return &Segmind{URL: segmindURL, apiKey: apiKey, client: client}
}

// Name identifies the provider.
func (s *Segmind) Name() string { return "segmind" }

type segmindRequest struct {
	Prompt            string  `json:"prompt"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumImages         int     `json:"num_images"`
}

type segmindResponse struct {
	Images []string `json:"images"`
}

// Generate requests one image and returns it as base64.
func (s *Segmind) Generate(ctx context.Context, prompt string, params Params) (*Image, error) {
	req := segmindRequest{
		Prompt:            prompt,
		NumInferenceSteps: 20,
		GuidanceScale:     7.5,
		Width:             params.Width,
		Height:            params.Height,
		NumImages:         1,
	}

	var resp segmindResponse
	headers := map[string]string{"x-api-key": s.apiKey}
	if err := postJSON(ctx, s.client, s.URL, headers, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Images) == 0 {
		return nil, errors.New("segmind: empty images in response")
	}
	return &Image{Base64: resp.Images[0]}, nil
}
