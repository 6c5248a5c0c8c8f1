// Package assembler merges stage outputs and image results into the final
// content package. The merge is pure aside from stamping the creation time.
package assembler

import (
	"time"

	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/parser"
)

// Input carries everything a run produced.
type Input struct {
	RunID        string
	Topic        domain.Topic
	Research     string
	Captions     parser.CaptionSet
	ImagePrompts []string
	Images       []domain.GeneratedImage
	SavedPaths   []string
	HashtagLimit int
}

// Assemble validates mandatory fields and builds the immutable package.
// It fails only with a *domain.AssemblyError when the topic or both captions
// are missing. Two calls with identical input produce identical packages
// except for CreatedAt.
func Assemble(in Input) (*domain.ContentPackage, error) {
	if in.Topic == "" {
		return nil, &domain.AssemblyError{Topic: string(in.Topic), MissingField: "topic"}
	}
	if in.Captions.ShortCaption == "" && in.Captions.LongCaption == "" {
		return nil, &domain.AssemblyError{Topic: string(in.Topic), MissingField: "caption"}
	}

	hashtags := in.Captions.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	if in.HashtagLimit > 0 && len(hashtags) > in.HashtagLimit {
		hashtags = hashtags[:in.HashtagLimit]
	}

	return &domain.ContentPackage{
		RunID:           in.RunID,
		Topic:           string(in.Topic),
		CreatedAt:       time.Now().UTC(),
		Research:        in.Research,
		ShortCaption:    in.Captions.ShortCaption,
		LongCaption:     in.Captions.LongCaption,
		Hashtags:        hashtags,
		ImagePrompts:    in.ImagePrompts,
		GeneratedImages: in.Images,
		SavedImagePaths: in.SavedPaths,
	}, nil
}
