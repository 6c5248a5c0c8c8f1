package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/instagen/internal/assembler"
	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/parser"
)

func validInput() assembler.Input {
	return assembler.Input{
		RunID:    "run-1",
		Topic:    "The Future of Electric Cars",
		Research: "EV adoption is accelerating worldwide.",
		Captions: parser.CaptionSet{
			ShortCaption: "Plug in to the future.",
			LongCaption:  "Electric cars are changing everything about how we drive.",
			Hashtags:     []string{"#EV", "#future"},
		},
		ImagePrompts: []string{"prompt one", "prompt two", "prompt three"},
		Images: []domain.GeneratedImage{
			{Prompt: "prompt one", Provider: "stub", URL: "http://img/0"},
		},
		SavedPaths:   []string{"generated_images/image_1_stub.png"},
		HashtagLimit: 30,
	}
}

func TestAssemble_BuildsPackage(t *testing.T) {
	pkg, err := assembler.Assemble(validInput())
	require.NoError(t, err)

	assert.Equal(t, "The Future of Electric Cars", pkg.Topic)
	assert.Equal(t, "run-1", pkg.RunID)
	assert.False(t, pkg.CreatedAt.IsZero())
	assert.Len(t, pkg.Hashtags, 2)
	assert.Len(t, pkg.ImagePrompts, 3)
	assert.Len(t, pkg.SavedImagePaths, 1)
}

func TestAssemble_MissingTopic(t *testing.T) {
	in := validInput()
	in.Topic = ""

	_, err := assembler.Assemble(in)
	require.Error(t, err)

	var asmErr *domain.AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, "topic", asmErr.MissingField)
}

func TestAssemble_MissingCaptions(t *testing.T) {
	in := validInput()
	in.Captions = parser.CaptionSet{}

	_, err := assembler.Assemble(in)
	require.Error(t, err)

	var asmErr *domain.AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, "caption", asmErr.MissingField)
	assert.Equal(t, "The Future of Electric Cars", asmErr.Topic)
}

func TestAssemble_OneCaptionSuffices(t *testing.T) {
	in := validInput()
	in.Captions.ShortCaption = ""

	pkg, err := assembler.Assemble(in)
	require.NoError(t, err)
	assert.NotEmpty(t, pkg.LongCaption)
}

func TestAssemble_EnforcesHashtagLimit(t *testing.T) {
	in := validInput()
	in.HashtagLimit = 1
	in.Captions.Hashtags = []string{"#a", "#b", "#c"}

	pkg, err := assembler.Assemble(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"#a"}, pkg.Hashtags)
}

func TestAssemble_NilHashtagsBecomeEmpty(t *testing.T) {
	in := validInput()
	in.Captions.Hashtags = nil

	pkg, err := assembler.Assemble(in)
	require.NoError(t, err)
	assert.NotNil(t, pkg.Hashtags)
	assert.Empty(t, pkg.Hashtags)
}

func TestAssemble_IdempotentExceptTimestamp(t *testing.T) {
	in := validInput()

	first, err := assembler.Assemble(in)
	require.NoError(t, err)
	second, err := assembler.Assemble(in)
	require.NoError(t, err)

	second.CreatedAt = first.CreatedAt
	assert.Equal(t, first, second)
}
