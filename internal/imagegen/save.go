package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonesrussell/instagen/internal/domain"
	"github.com/jonesrussell/instagen/internal/logger"
)

// Saver writes successful images to the output directory as PNG files.
// Base64 payloads are decoded; URL results are downloaded. Failed entries
// are skipped, and a save failure downgrades the entry rather than failing
// the batch.
type Saver struct {
	outputDir string
	client    *http.Client
	logger    logger.Logger
}

// NewSaver creates a Saver writing into outputDir.
func NewSaver(outputDir string, client *http.Client, log logger.Logger) *Saver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Saver{outputDir: outputDir, client: client, logger: log}
}

// SaveAll persists every successful image, filling in SavedPath in place,
// and returns the list of saved paths in order.
func (s *Saver) SaveAll(ctx context.Context, images []domain.GeneratedImage) []string {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		s.logger.Error("create image output dir failed",
			logger.String("dir", s.outputDir), logger.Error(err))
		return nil
	}

	var paths []string
	for i := range images {
		img := &images[i]
		if img.Failed() {
			continue
		}

		path := filepath.Join(s.outputDir, fmt.Sprintf("image_%d_%s.png", i+1, img.Provider))
		if err := s.save(ctx, img, path); err != nil {
			s.logger.Warn("save image failed",
				logger.Int("index", i),
				logger.String("path", path),
				logger.Error(err))
			continue
		}
		img.SavedPath = path
		paths = append(paths, path)
	}
	return paths
}

func (s *Saver) save(ctx context.Context, img *domain.GeneratedImage, path string) error {
	var data []byte

	switch {
	case img.Base64 != "":
		decoded, err := base64.StdEncoding.DecodeString(img.Base64)
		if err != nil {
			return fmt.Errorf("decode base64: %w", err)
		}
		data = decoded
	case img.URL != "":
		downloaded, err := s.download(ctx, img.URL)
		if err != nil {
			return err
		}
		data = downloaded
	default:
		return fmt.Errorf("image for prompt %q has no data", img.Prompt)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Saver) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
