package imagegen

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
)

const pollinationsBaseURL = "https://image.pollinations.ai/prompt/"

// Pollinations is a free, keyless image service. Images are served directly
// by URL, so generation is just URL construction; the download happens when
// the image is saved.
type Pollinations struct {
	// BaseURL is overridable for tests.
	BaseURL string
	// seed produces a fresh seed per call so repeated prompts vary.
	seed func() int64
}

// NewPollinations creates the pollinations provider.
func NewPollinations() *Pollinations {
	return &Pollinations{
		BaseURL: pollinationsBaseURL,
		seed:    func() int64 { return rand.Int63n(10_000_000) + 1 },
	}
}

// Name identifies the provider.
func (p *Pollinations) Name() string { return "pollinations" }

// Generate builds the image URL for the prompt.
func (p *Pollinations) Generate(_ context.Context, prompt string, params Params) (*Image, error) {
	u := fmt.Sprintf("%s%s?width=%d&height=%d&enhance=true&seed=%d",
		p.BaseURL, url.PathEscape(prompt), params.Width, params.Height, p.seed())
	return &Image{URL: u}, nil
}
