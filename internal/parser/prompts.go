package parser

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/instagen/internal/domain"
)

// minPromptLength filters out headings and stray fragments when splitting
// the image prompt stage output into individual prompts.
const minPromptLength = 20

// ParseImagePrompts splits the image prompt stage output into exactly count
// prompts. Lines are cleaned of numbering and bullets; lines shorter than
// minPromptLength or starting with a markdown heading are skipped. If the
// text yields fewer prompts than requested the last prompt is repeated; if
// it yields none, topic-derived fallbacks are used. Extra prompts are
// truncated.
func ParseImagePrompts(text string, topic domain.Topic, count int) []string {
	if count < 1 {
		count = 1
	}

	var prompts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		clean := strings.TrimLeft(line, "0123456789.-•*) ")
		if len(clean) < minPromptLength {
			continue
		}
		prompts = append(prompts, clean)
		if len(prompts) == count {
			break
		}
	}

	if len(prompts) == 0 {
		return FallbackPrompts(topic, count)
	}
	for len(prompts) < count {
		prompts = append(prompts, prompts[len(prompts)-1])
	}
	return prompts
}

// FallbackPrompts returns generic topic-derived prompts, used when the image
// prompt stage fails or produces nothing usable.
func FallbackPrompts(topic domain.Topic, count int) []string {
	base := []string{
		fmt.Sprintf("Professional Instagram post about %s, modern design, high quality", topic),
		fmt.Sprintf("Engaging social media visual for %s, vibrant colors, square format", topic),
		fmt.Sprintf("Creative illustration representing %s, clean background, Instagram ready", topic),
	}
	if count <= len(base) {
		return base[:count]
	}
	out := make([]string, 0, count)
	for len(out) < count {
		out = append(out, base[len(out)%len(base)])
	}
	return out
}
