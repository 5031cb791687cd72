package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	reportapp "github.com/venuehq/backend/internal/application/report"
)

// Ensure LocalExportStore implements ExportStore
var _ reportapp.ExportStore = (*LocalExportStore)(nil)

// LocalExportStore writes report exports to a directory on disk.
// Use this for development and single-node deployments without an
// object store.
type LocalExportStore struct {
	baseDir string
}

// NewLocalExportStore creates a new LocalExportStore rooted at baseDir
func NewLocalExportStore(baseDir string) (*LocalExportStore, error) {
	if baseDir == "" {
		return nil, errors.New("exports base path is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	return &LocalExportStore{baseDir: baseDir}, nil
}

// Put writes the file under the base directory and returns its path
func (s *LocalExportStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	if key == "" {
		return "", errors.New("export key is required")
	}

	// Keys come from internal callers, but reject traversal anyway
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid export key: %s", key)
	}

	path := filepath.Join(s.baseDir, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	return path, nil
}
