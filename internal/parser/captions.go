// Package parser decomposes free-form model output into the structured
// fields of a content package. The model is not held to a schema, so every
// extraction here has a deterministic fallback; parsing never aborts a run.
package parser

import (
	"strings"

	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/domain"
)

// CaptionSet holds the three sub-fields of the write/review stage output.
type CaptionSet struct {
	ShortCaption string
	LongCaption  string
	Hashtags     []string
}

// ParseCaptions splits a write or review stage response into short caption,
// long caption, and hashtags by case-insensitive heading match.
//
// When no section markers are found at all, a deterministic fallback is
// applied: the first sentence (truncated to the short limit) becomes the
// short caption, the full text (truncated to the long limit) becomes the
// long caption, and hashtags are empty. The returned *domain.ParseError
// reports that the fallback was used; the CaptionSet is always usable.
func ParseCaptions(stageName domain.StageName, text string, cfg config.ContentConfig) (CaptionSet, *domain.ParseError) {
	lines := strings.Split(text, "\n")

	short := extractSection(lines, []string{"short caption", "short:"}, true)
	long := extractSection(lines, []string{"long caption", "long:"}, false)

	if short == "" && long == "" {
		return fallbackSplit(text, cfg), &domain.ParseError{
			Stage:  stageName,
			Reason: "no section markers found, applied fallback split",
		}
	}

	// One marker present is enough to trust the structure; derive the
	// missing field deterministically.
	if short == "" {
		short = truncate(firstSentence(text), cfg.ShortCaptionLimit)
	}
	if long == "" {
		long = truncate(text, cfg.LongCaptionLimit)
	}

	return CaptionSet{
		ShortCaption: short,
		LongCaption:  long,
		Hashtags:     ExtractHashtags(text, cfg.HashtagLimit),
	}, nil
}

// extractSection finds a heading line matching any of the markers and
// returns its content: the remainder of the heading line if non-empty,
// otherwise the following lines. Single-line sections stop at the first
// empty line; multi-line sections run until the next heading.
func extractSection(lines []string, markers []string, singleLine bool) string {
	idx := -1
	var remainder string
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range markers {
			if pos := strings.Index(lower, m); pos >= 0 {
				idx = i
				rest := line[pos+len(m):]
				remainder = strings.TrimSpace(strings.TrimLeft(rest, ":)* "))
				break
			}
		}
		if idx >= 0 {
			break
		}
	}
	if idx < 0 {
		return ""
	}
	if remainder != "" {
		return remainder
	}

	var collected []string
	for _, line := range lines[idx+1:] {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			break
		}
		if trimmed == "" {
			if len(collected) > 0 && singleLine {
				break
			}
			continue
		}
		collected = append(collected, trimmed)
		if singleLine {
			break
		}
	}
	return strings.Join(collected, "\n")
}

// isHeading reports whether a line introduces another section.
func isHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range []string{"short caption", "long caption", "hashtag"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ExtractHashtags collects #tokens from the text in order of appearance,
// deduplicated case-insensitively and capped at limit.
func ExtractHashtags(text string, limit int) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.TrimRight(word, ".,!?;:")
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == limit {
			break
		}
	}
	return tags
}

// fallbackSplit is the deterministic split used when no markers are present.
func fallbackSplit(text string, cfg config.ContentConfig) CaptionSet {
	trimmed := strings.TrimSpace(text)
	return CaptionSet{
		ShortCaption: truncate(firstSentence(trimmed), cfg.ShortCaptionLimit),
		LongCaption:  truncate(trimmed, cfg.LongCaptionLimit),
		Hashtags:     []string{},
	}
}

// firstSentence returns the text up to the first sentence terminator or
// newline, whichever comes first.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	for _, term := range []string{". ", "! ", "? "} {
		if i := strings.Index(text, term); i >= 0 {
			return text[:i+1]
		}
	}
	return text
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
