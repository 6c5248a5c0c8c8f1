// Package stage defines the fixed set of pipeline stages and executes their
// LLM calls. Stages form a closed set; the orchestrator dispatches them in a
// fixed order rather than through open-ended polymorphism.
package stage

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
)

// Definition describes one stage: its identity, the system prompt framing the
// model's role, the user template with placeholders, and the upstream stages
// whose output the template embeds.
type Definition struct {
	Name     domain.StageName
	System   string
	Template string
	Requires []domain.StageName
}

// Render substitutes {topic} and upstream stage placeholders (for example
// {research}) with their values. It fails if a required upstream output is
// not yet present in the context, which enforces the sequential ordering
// invariant.
func (d Definition) Render(topic domain.Topic, pctx domain.PipelineContext) (string, error) {
	out := strings.ReplaceAll(d.Template, "{topic}", string(topic))
	for _, req := range d.Requires {
		val, ok := pctx[req]
		if !ok {
			return "", fmt.Errorf("stage %q requires output of stage %q which has not run", d.Name, req)
		}
		out = strings.ReplaceAll(out, "{"+string(req)+"}", val)
	}
	return out, nil
}

// Definitions builds the four stage definitions with limits from cfg baked
// into the prompts. The limits are soft: the review stage is asked to enforce
// them, nothing truncates model output mechanically.
func Definitions(cfg config.ContentConfig) []Definition {
	return []Definition{
		{
			Name: domain.StageResearch,
			System: "You are an expert researcher with a keen eye for detail. You excel at " +
				"identifying key trends, statistics, and insights that resonate with Instagram " +
				"audiences, and you provide well-structured, factual content.",
			Template: `Research the topic: "{topic}"

Your research should include:
1. Key facts and statistics about the topic
2. Current trends and developments
3. Interesting insights or perspectives
4. Relevant examples or case studies

Focus on information that is visually interesting, shareable, and easy to
understand in social media format. Provide a research summary with clear
sections and bullet points.`,
		},
		{
			Name: domain.StageWrite,
			System: "You are a creative content writer specializing in Instagram marketing. " +
				"You know how to craft captions that stop the scroll and encourage likes, " +
				"comments, and shares.",
			Template: fmt.Sprintf(`Using the research below, create Instagram content.

RESEARCH:
{research}

Produce exactly these sections:

SHORT CAPTION (under %d characters):
- Hook that grabs attention, key message, call-to-action

LONG CAPTION (under %d characters):
- Engaging opening line, story or detailed explanation, key points from the
  research, call-to-action

HASHTAGS (up to %d):
- A mix of trending, niche-specific, and general hashtags, each starting with #

Label each section with its heading exactly as written above.`,
				cfg.ShortCaptionLimit, cfg.LongCaptionLimit, cfg.HashtagLimit),
			Requires: []domain.StageName{domain.StageResearch},
		},
		{
			Name: domain.StageReview,
			System: "You are a meticulous editor with years of experience in content marketing " +
				"and social media. You polish grammar, tone, and engagement while keeping the " +
				"original structure intact.",
			Template: fmt.Sprintf(`Review and edit the Instagram content below.

CONTENT:
{write}

Fix grammar, strengthen hooks and calls-to-action, and verify the short
caption stays under %d characters, the long caption under %d characters, and
the hashtag count at or below %d. Return the polished content with the same
section headings (SHORT CAPTION, LONG CAPTION, HASHTAGS).`,
				cfg.ShortCaptionLimit, cfg.LongCaptionLimit, cfg.HashtagLimit),
			Requires: []domain.StageName{domain.StageWrite},
		},
		{
			Name: domain.StageImagePrompt,
			System: "You are a visual content strategist with a deep understanding of visual " +
				"storytelling and Instagram aesthetics. You craft detailed prompts for " +
				"text-to-image models.",
			Template: `Create 3 detailed image prompts for the topic: "{topic}"

Each prompt must be visually compelling, Instagram-optimized (square format,
high contrast), directly relevant to the topic, and offer a different visual
perspective. Include the main subject, composition, lighting, mood, color
palette, and style.

Write one prompt per line with no extra commentary.`,
		},
	}
}
