// Package storage persists content packages as JSON files for inspection by
// downstream consumers.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/jonesrussell/instagen/internal/domain"
)

// ResultStore writes packages into a results directory, one file per run.
type ResultStore struct {
	dir string
}

// NewResultStore creates a store rooted at dir.
func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// Save writes pkg as indented JSON and returns the file path.
// The filename embeds a sanitized topic and the creation timestamp:
// instagram_content_<topic>_<YYYYMMDD_HHMMSS>.json
func (s *ResultStore) Save(pkg *domain.ContentPackage) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	name := fmt.Sprintf("instagram_content_%s_%s.json",
		sanitizeTopic(pkg.Topic), pkg.CreatedAt.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal package: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write package: %w", err)
	}
	return path, nil
}

// List returns the saved package file names, newest first.
func (s *ResultStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Load reads a previously saved package by file name.
func (s *ResultStore) Load(name string) (*domain.ContentPackage, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	var pkg domain.ContentPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse package: %w", err)
	}
	return &pkg, nil
}

// sanitizeTopic keeps letters, digits, spaces, hyphens, and underscores,
// then replaces spaces with underscores.
func sanitizeTopic(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
