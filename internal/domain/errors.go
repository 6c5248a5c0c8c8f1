package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline.
var (
	// ErrEmptyTopic is returned when a run is started without a topic.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrEmptyResponse is returned when the model produces no usable text.
	ErrEmptyResponse = errors.New("model returned empty response")
)

// GenerationError indicates an LLM call failed or returned unusable content
// for a given stage.
type GenerationError struct {
	Stage StageName
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at stage %q: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError wraps err with the stage it occurred in.
func NewGenerationError(stage StageName, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}

// ParseError indicates a stage's text could not be decomposed into the
// required sub-fields. It never aborts a run on its own; the caller applies
// a deterministic fallback split instead.
type ParseError struct {
	Stage  StageName
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for stage %q: %s", e.Stage, e.Reason)
}

// ImageGenerationError indicates an individual image request failed.
// Failures are isolated per prompt; the run continues.
type ImageGenerationError struct {
	Provider string
	Prompt   string
	Err      error
}

func (e *ImageGenerationError) Error() string {
	return fmt.Sprintf("image generation failed (provider %s): %v", e.Provider, e.Err)
}

func (e *ImageGenerationError) Unwrap() error {
	return e.Err
}

// AssemblyError indicates mandatory fields were missing at merge time.
// It is fatal for the run.
type AssemblyError struct {
	Topic        string
	MissingField string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly failed for topic %q: missing %s", e.Topic, e.MissingField)
}
