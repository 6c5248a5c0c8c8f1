// Package pipeline drives the fixed content generation chain:
// Research → Write → Review → ImagePrompt → ImageGeneration → Assemble.
// Each stage consumes the accumulated context of its predecessors; nothing
// runs concurrently within one run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/instagen/internal/assembler"
	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/imagegen"
	"github.com/jonesrussell/instagen/internal/llm"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/parser"
	"github.com/jonesrussell/instagen/internal/stage"
)

// Orchestrator owns one run's pipeline context and applies the failure
// policy: Research and Write failures abort the run, Review degrades to the
// pre-review content, ImagePrompt degrades to topic-derived prompts, and
// image failures are isolated per prompt.
type Orchestrator struct {
	cfg      *config.Config
	executor *stage.Executor
	defs     map[domain.StageName]stage.Definition
	images   *imagegen.Client
	saver    *imagegen.Saver
	logger   logger.Logger
}

// New creates an orchestrator. saver may be nil when image saving is
// disabled.
func New(cfg *config.Config, client llm.Client, images *imagegen.Client, saver *imagegen.Saver, log logger.Logger) *Orchestrator {
	defs := make(map[domain.StageName]stage.Definition)
	for _, d := range stage.Definitions(cfg.Content) {
		defs[d.Name] = d
	}
	return &Orchestrator{
		cfg:      cfg,
		executor: stage.NewExecutor(client, log),
		defs:     defs,
		images:   images,
		saver:    saver,
		logger:   log,
	}
}

// Run executes the full pipeline for topic and returns the assembled
// package. The pipeline context is local to this call, so independent
// topics may run concurrently at the caller's discretion.
func (o *Orchestrator) Run(ctx context.Context, topic domain.Topic) (*domain.ContentPackage, error) {
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}

	runID := uuid.NewString()
	log := o.logger.With(
		logger.String("run_id", runID),
		logger.String("topic", string(topic)))
	log.Info("starting content generation run")
	start := time.Now()

	pctx := domain.PipelineContext{}

	// Research and Write are mandatory: without them there is no usable
	// content to proceed with.
	research, err := o.executor.Execute(ctx, o.defs[domain.StageResearch], topic, pctx)
	if err != nil {
		return nil, err
	}
	pctx[domain.StageResearch] = research

	written, err := o.executor.Execute(ctx, o.defs[domain.StageWrite], topic, pctx)
	if err != nil {
		return nil, err
	}
	pctx[domain.StageWrite] = written

	captions, perr := parser.ParseCaptions(domain.StageWrite, written, o.cfg.Content)
	if perr != nil {
		log.Warn("write output parse fallback", logger.Error(perr))
	}

	// Review is best-effort: a failed call or unparseable output keeps the
	// pre-review content untouched.
	reviewed, err := o.executor.Execute(ctx, o.defs[domain.StageReview], topic, pctx)
	if err != nil {
		log.Warn("review stage failed, keeping pre-review content", logger.Error(err))
	} else {
		pctx[domain.StageReview] = reviewed
		if polished, rerr := parser.ParseCaptions(domain.StageReview, reviewed, o.cfg.Content); rerr == nil {
			captions = polished
		} else {
			log.Warn("review output not parseable, keeping pre-review content", logger.Error(rerr))
		}
	}

	prompts := o.imagePrompts(ctx, topic, pctx, log)

	images := o.images.Generate(ctx, prompts)
	var savedPaths []string
	if o.cfg.Output.SaveImages && o.saver != nil {
		savedPaths = o.saver.SaveAll(ctx, images)
	}

	pkg, err := assembler.Assemble(assembler.Input{
		RunID:        runID,
		Topic:        topic,
		Research:     research,
		Captions:     captions,
		ImagePrompts: prompts,
		Images:       images,
		SavedPaths:   savedPaths,
		HashtagLimit: o.cfg.Content.HashtagLimit,
	})
	if err != nil {
		log.Error("package assembly failed", logger.Error(err))
		return nil, err
	}

	log.Info("content generation run completed",
		logger.Int("hashtags", len(pkg.Hashtags)),
		logger.Int("image_prompts", len(pkg.ImagePrompts)),
		logger.Int("saved_images", len(pkg.SavedImagePaths)),
		logger.Duration("elapsed", time.Since(start)))
	return pkg, nil
}

// imagePrompts runs the image prompt stage, degrading to topic-derived
// prompts when the stage fails.
func (o *Orchestrator) imagePrompts(ctx context.Context, topic domain.Topic, pctx domain.PipelineContext, log logger.Logger) []string {
	count := o.cfg.Images.Count

	raw, err := o.executor.Execute(ctx, o.defs[domain.StageImagePrompt], topic, pctx)
	if err != nil {
		log.Warn("image prompt stage failed, using fallback prompts", logger.Error(err))
		return parser.FallbackPrompts(topic, count)
	}
	pctx[domain.StageImagePrompt] = raw
	return parser.ParseImagePrompts(raw, topic, count)
}
