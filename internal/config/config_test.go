package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "text" {
		t.Errorf("expected default format text, got %s", cfg.Output.Format)
	}
	if cfg.Analysis.Parser != "regex" {
		t.Errorf("expected default parser regex, got %s", cfg.Analysis.Parser)
	}
	if cfg.Watch.DebounceMillis != 500 {
		t.Errorf("expected default debounce 500, got %d", cfg.Watch.DebounceMillis)
	}

	excluded := false
	for _, p := range cfg.Analysis.ExcludePaths {
		if p == "node_modules" {
			excluded = true
		}
	}
	if !excluded {
		t.Error("node_modules must be excluded by default")
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Output.DocsDir = "generated-docs"
	cfg.AI.Model = "gemini-2.5-pro"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Output.DocsDir != "generated-docs" {
		t.Errorf("expected docs dir generated-docs, got %s", loaded.Output.DocsDir)
	}
	if loaded.AI.Model != "gemini-2.5-pro" {
		t.Errorf("expected model gemini-2.5-pro, got %s", loaded.AI.Model)
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Analysis.Parser = "ast"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Analysis.Parser != "ast" {
		t.Errorf("expected parser ast, got %s", loaded.Analysis.Parser)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DOCUSCAN_DATABASE_URL", "postgres://localhost/docuscan")
	t.Setenv("DOCUSCAN_MODEL", "gemini-2.0-flash-lite")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Errorf("expected API key from env, got %q", cfg.AI.APIKey)
	}
	if !cfg.Database.Enabled {
		t.Error("database URL from env must enable persistence")
	}
	if cfg.AI.Model != "gemini-2.0-flash-lite" {
		t.Errorf("expected model override, got %s", cfg.AI.Model)
	}
}

func TestAPIKeyNeverSerialized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.AI.APIKey = "super-secret"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if strings.Contains(string(data), "super-secret") {
		t.Error("API key must never be written to the config file")
	}
}
