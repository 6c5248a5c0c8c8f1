// Package domain defines the core types shared across the content generation pipeline.
package domain

import "time"

// Topic is the user-supplied subject a pipeline run generates content for.
// It is immutable once a run starts.
type Topic string

// StageName identifies one step of the fixed pipeline.
type StageName string

// The pipeline stages, in execution order.
const (
	StageResearch    StageName = "research"
	StageWrite       StageName = "write"
	StageReview      StageName = "review"
	StageImagePrompt StageName = "image_prompt"
)

// Stages lists the LLM-backed stages in the order the orchestrator runs them.
var Stages = []StageName{StageResearch, StageWrite, StageReview, StageImagePrompt}

// PipelineContext accumulates stage outputs during a single run.
// It grows monotonically as stages complete and is owned exclusively by the
// orchestrator; it is discarded once the run produces a package.
type PipelineContext map[StageName]string

// Clone returns a copy of the context so callers can hand it out without
// exposing the orchestrator's working map.
func (c PipelineContext) Clone() PipelineContext {
	out := make(PipelineContext, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// GeneratedImage is one normalized image result for a single prompt.
// Exactly one of URL or Base64 is set on success; Error is set on failure.
type GeneratedImage struct {
	Prompt    string `json:"prompt"`
	Provider  string `json:"provider"`
	URL       string `json:"url,omitempty"`
	Base64    string `json:"base64,omitempty"`
	SavedPath string `json:"saved_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Failed reports whether the image request for this prompt failed.
func (g *GeneratedImage) Failed() bool {
	return g.Error != ""
}

// ContentPackage is the final structured result of one pipeline run.
// It is constructed once by the assembler and never mutated afterwards.
type ContentPackage struct {
	RunID           string           `json:"run_id"`
	Topic           string           `json:"topic"`
	CreatedAt       time.Time        `json:"created_at"`
	Research        string           `json:"research"`
	ShortCaption    string           `json:"short_caption"`
	LongCaption     string           `json:"long_caption"`
	Hashtags        []string         `json:"hashtags"`
	ImagePrompts    []string         `json:"image_prompts"`
	GeneratedImages []GeneratedImage `json:"generated_images"`
	SavedImagePaths []string         `json:"saved_image_paths"`
}
