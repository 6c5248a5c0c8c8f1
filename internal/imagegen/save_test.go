package imagegen_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/imagegen"
	"github.com/jonesrussell/instagen/internal/logger"
)

func TestSaver_SaveAll(t *testing.T) {
	pngBytes := []byte("fake-png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	dir := t.TempDir()
	saver := imagegen.NewSaver(dir, srv.Client(), logger.NewNop())

	images := []domain.GeneratedImage{
		{Prompt: "a", Provider: "pollinations", URL: srv.URL + "/a.png"},
		{Prompt: "b", Provider: "segmind", Base64: base64.StdEncoding.EncodeToString(pngBytes)},
		{Prompt: "c", Provider: "pollinations", Error: "generation failed"},
	}

	paths := saver.SaveAll(context.Background(), images)

	if len(paths) != 2 {
		t.Fatalf("got %d saved paths, want 2: %v", len(paths), paths)
	}
	wantFirst := filepath.Join(dir, "image_1_pollinations.png")
	wantSecond := filepath.Join(dir, "image_2_segmind.png")
	if paths[0] != wantFirst || paths[1] != wantSecond {
		t.Errorf("paths = %v, want [%s %s]", paths, wantFirst, wantSecond)
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != string(pngBytes) {
			t.Errorf("%s content mismatch", p)
		}
	}

	if images[0].SavedPath != wantFirst {
		t.Errorf("SavedPath not filled in: %q", images[0].SavedPath)
	}
	if images[2].SavedPath != "" {
		t.Error("failed image should not have a SavedPath")
	}
}

func TestSaver_DownloadFailureSkipsEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	saver := imagegen.NewSaver(t.TempDir(), srv.Client(), logger.NewNop())

	images := []domain.GeneratedImage{
		{Prompt: "a", Provider: "pollinations", URL: srv.URL + "/missing.png"},
	}
	paths := saver.SaveAll(context.Background(), images)

	if len(paths) != 0 {
		t.Errorf("got %d paths, want 0", len(paths))
	}
	if images[0].SavedPath != "" {
		t.Error("entry with failed download should have no SavedPath")
	}
}

func TestSaver_BadBase64SkipsEntry(t *testing.T) {
	saver := imagegen.NewSaver(t.TempDir(), nil, logger.NewNop())

	images := []domain.GeneratedImage{
		{Prompt: "a", Provider: "segmind", Base64: "not!!base64"},
	}
	paths := saver.SaveAll(context.Background(), images)

	if len(paths) != 0 {
		t.Errorf("got %d paths, want 0", len(paths))
	}
}
