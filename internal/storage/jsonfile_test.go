package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuscan/cli/internal/domain"
)

func sampleAnalysis() *domain.Analysis {
	return &domain.Analysis{
		Framework: "nestjs",
		Routes: []domain.Route{
			{Method: "GET", Path: "/users", Handler: "findAll"},
		},
		Controllers: []domain.Controller{{Name: "UsersController", FilePath: "users.controller.ts"}},
		Services:    []domain.Service{},
		Types:       []domain.Type{},
		Metadata: domain.Metadata{
			TotalRoutes:      1,
			TotalControllers: 1,
			AnalysisTime:     0.42,
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "analysis.json")
	store := NewFileStore()

	require.NoError(t, store.SaveAnalysis(sampleAnalysis(), path))

	loaded, err := store.LoadAnalysis(path)
	require.NoError(t, err)
	assert.Equal(t, sampleAnalysis(), loaded)
}

func TestFileStore_BackupOnOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	store := NewFileStore()

	require.NoError(t, store.SaveAnalysis(sampleAnalysis(), path))
	require.NoError(t, store.SaveAnalysis(sampleAnalysis(), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	backups := 0
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".backup.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "expected exactly one backup file")
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	_, err := NewFileStore().LoadAnalysis("/no/such/analysis.json")
	assert.Error(t, err)
}
