package stage

import (
	"context"
	"strings"
	"time"

	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/llm"
	"github.com/jonesrussell/instagen/internal/logger"
)

// Executor runs a single stage: it renders the prompt against the accumulated
// context and performs one blocking LLM call. It never retries; the
// orchestrator decides what a failure means for the run.
type Executor struct {
	llm    llm.Client
	logger logger.Logger
}

// NewExecutor creates a stage executor.
func NewExecutor(client llm.Client, log logger.Logger) *Executor {
	return &Executor{llm: client, logger: log}
}

// Execute renders def's template and returns the raw model response.
// Failures are wrapped in a domain.GenerationError carrying the stage name.
func (e *Executor) Execute(ctx context.Context, def Definition, topic domain.Topic, pctx domain.PipelineContext) (string, error) {
	user, err := def.Render(topic, pctx)
	if err != nil {
		return "", domain.NewGenerationError(def.Name, err)
	}

	start := time.Now()
	raw, err := e.llm.Complete(ctx, llm.Prompt{System: def.System, User: user})
	if err != nil {
		e.logger.Error("stage llm call failed",
			logger.String("stage", string(def.Name)),
			logger.Error(err))
		return "", domain.NewGenerationError(def.Name, err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.NewGenerationError(def.Name, domain.ErrEmptyResponse)
	}

	e.logger.Debug("stage completed",
		logger.String("stage", string(def.Name)),
		logger.Int("response_chars", len(raw)),
		logger.Duration("elapsed", time.Since(start)))
	return raw, nil
}
