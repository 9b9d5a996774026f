package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docuscan/cli/internal/domain"
)

// FileStore persists analysis results as indented JSON files. The file
// shape is the canonical analysis schema and must round-trip without
// loss for downstream consumers.
type FileStore struct{}

func NewFileStore() *FileStore { return &FileStore{} }

// SaveAnalysis writes the analysis to filename, keeping a timestamped
// backup of any file already there.
func (s *FileStore) SaveAnalysis(analysis *domain.Analysis, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if _, err := os.Stat(filename); err == nil {
		backupName := fmt.Sprintf("%s.backup.%s", filename, time.Now().Format("20060102-150405"))
		if err := os.Rename(filename, backupName); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}

	return nil
}

// LoadAnalysis reads an analysis back from filename.
func (s *FileStore) LoadAnalysis(filename string) (*domain.Analysis, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &analysis, nil
}
