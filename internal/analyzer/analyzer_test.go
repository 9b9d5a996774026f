package analyzer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/docuscan/cli/internal/config"
	"github.com/docuscan/cli/internal/logger"
)

func newTestAnalyzer() *Analyzer {
	return New(config.DefaultConfig(), &logger.StdoutLogger{})
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

var expressProject = map[string]string{
	"package.json": `{"dependencies": {"express": "^4.18.0"}}`,
	"src/app.js": `const express = require('express');
const app = express();
app.get('/users', listUsers);
app.post('/users', createUser);
`,
	"src/types.ts": `export interface User {
  id: number;
  name: string;
}
`,
}

func TestAnalyze_MetadataCountsMatchLists(t *testing.T) {
	dir := writeProject(t, expressProject)

	analysis, err := newTestAnalyzer().Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if analysis.Metadata.TotalRoutes != len(analysis.Routes) {
		t.Errorf("totalRoutes %d != len(routes) %d", analysis.Metadata.TotalRoutes, len(analysis.Routes))
	}
	if analysis.Metadata.TotalControllers != len(analysis.Controllers) {
		t.Errorf("controller count mismatch")
	}
	if analysis.Metadata.TotalServices != len(analysis.Services) {
		t.Errorf("service count mismatch")
	}
	if analysis.Metadata.TotalTypes != len(analysis.Types) {
		t.Errorf("type count mismatch")
	}
	if analysis.Framework != "express" {
		t.Errorf("expected express framework, got %s", analysis.Framework)
	}
	if len(analysis.Routes) != 2 {
		t.Errorf("expected 2 routes, got %d", len(analysis.Routes))
	}
}

func TestAnalyze_IsIdempotent(t *testing.T) {
	dir := writeProject(t, expressProject)
	a := newTestAnalyzer()

	first, err := a.Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := a.Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	// Identical apart from timing.
	first.Metadata.AnalysisTime = 0
	second.Metadata.AnalysisTime = 0
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consecutive runs differ:\n%+v\n%+v", first, second)
	}
}

func TestAnalyze_ExcludedOnlyTreeIsEmptyNotFatal(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"node_modules/express/index.js": "module.exports = () => {};",
		"node_modules/express/lib/router.js": "app.get('/internal', nope);",
	})

	analysis, err := newTestAnalyzer().Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("expected no fatal error, got %v", err)
	}
	if len(analysis.Routes)+len(analysis.Controllers)+len(analysis.Services)+len(analysis.Types) != 0 {
		t.Fatalf("expected empty lists, got %+v", analysis.Metadata)
	}
}

func TestAnalyze_MissingRootIsFatal(t *testing.T) {
	if _, err := newTestAnalyzer().Analyze(context.Background(), "/no/such/project"); err == nil {
		t.Fatalf("expected fatal error for missing root")
	}
}

func TestAnalyze_JSONSchemaRoundTrip(t *testing.T) {
	dir := writeProject(t, expressProject)

	analysis, err := newTestAnalyzer().Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"framework", "routes", "controllers", "services", "types", "metadata"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	meta := decoded["metadata"].(map[string]interface{})
	for _, key := range []string{"totalRoutes", "totalControllers", "totalServices", "totalTypes", "analysisTime"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("missing metadata key %q", key)
		}
	}
	// lists serialize as arrays, never null
	if decoded["controllers"] == nil {
		t.Errorf("controllers serialized as null")
	}
}
