package stage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/llm"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/stage"
)

func contentConfig() config.ContentConfig {
	return config.ContentConfig{HashtagLimit: 30, ShortCaptionLimit: 150, LongCaptionLimit: 2200}
}

func definitionFor(t *testing.T, name domain.StageName) stage.Definition {
	t.Helper()
	for _, def := range stage.Definitions(contentConfig()) {
		if def.Name == name {
			return def
		}
	}
	t.Fatalf("no definition for stage %q", name)
	return stage.Definition{}
}

func TestDefinitions_CoverAllStagesInOrder(t *testing.T) {
	defs := stage.Definitions(contentConfig())

	if len(defs) != len(domain.Stages) {
		t.Fatalf("got %d definitions, want %d", len(defs), len(domain.Stages))
	}
	for i, def := range defs {
		if def.Name != domain.Stages[i] {
			t.Errorf("definition %d = %q, want %q", i, def.Name, domain.Stages[i])
		}
	}
}

func TestDefinitions_BakeLimitsIntoPrompts(t *testing.T) {
	write := definitionFor(t, domain.StageWrite)

	if !strings.Contains(write.Template, "150") || !strings.Contains(write.Template, "2200") {
		t.Error("write template should mention the caption limits")
	}
	if !strings.Contains(write.Template, "30") {
		t.Error("write template should mention the hashtag limit")
	}
}

func TestRender_SubstitutesTopicAndUpstream(t *testing.T) {
	write := definitionFor(t, domain.StageWrite)
	pctx := domain.PipelineContext{domain.StageResearch: "RESEARCH NOTES HERE"}

	out, err := write.Render("Vertical Farming", pctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "RESEARCH NOTES HERE") {
		t.Error("rendered prompt should embed the research output")
	}
	if strings.Contains(out, "{research}") {
		t.Error("placeholder left unsubstituted")
	}
}

func TestRender_MissingUpstreamFails(t *testing.T) {
	review := definitionFor(t, domain.StageReview)

	_, err := review.Render("Vertical Farming", domain.PipelineContext{})
	if err == nil {
		t.Fatal("expected error when upstream output is missing")
	}
	if !strings.Contains(err.Error(), string(domain.StageWrite)) {
		t.Errorf("error should name the missing stage: %v", err)
	}
}

func TestExecute_ReturnsTrimmedResponse(t *testing.T) {
	mock := &llm.Mock{Responses: []string{"  the response  \n"}}
	exec := stage.NewExecutor(mock, logger.NewNop())
	research := definitionFor(t, domain.StageResearch)

	out, err := exec.Execute(context.Background(), research, "Topic", domain.PipelineContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "the response" {
		t.Errorf("out = %q", out)
	}
	if mock.Prompts[0].System == "" {
		t.Error("system prompt should be forwarded")
	}
	if !strings.Contains(mock.Prompts[0].User, "Topic") {
		t.Error("user prompt should embed the topic")
	}
}

func TestExecute_WrapsLLMFailure(t *testing.T) {
	boom := errors.New("api unavailable")
	mock := &llm.Mock{Errors: map[int]error{0: boom}}
	exec := stage.NewExecutor(mock, logger.NewNop())
	research := definitionFor(t, domain.StageResearch)

	_, err := exec.Execute(context.Background(), research, "Topic", domain.PipelineContext{})

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if genErr.Stage != domain.StageResearch {
		t.Errorf("stage = %q", genErr.Stage)
	}
	if !errors.Is(err, boom) {
		t.Error("cause should be preserved through the wrap")
	}
}

func TestExecute_EmptyResponse(t *testing.T) {
	mock := &llm.Mock{Responses: []string{"   \n  "}}
	exec := stage.NewExecutor(mock, logger.NewNop())
	research := definitionFor(t, domain.StageResearch)

	_, err := exec.Execute(context.Background(), research, "Topic", domain.PipelineContext{})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}
