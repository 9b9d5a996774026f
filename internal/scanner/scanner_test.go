package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docuscan/cli/internal/config"
	"github.com/docuscan/cli/internal/logger"
)

func newTestScanner() *Scanner {
	return New(config.DefaultConfig().Analysis, &logger.StdoutLogger{})
}

func writeFiles(t *testing.T, files map[string]string) string {
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

func TestScan_CollectsSourceFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"src/app.ts":         "const x: number = 1;\nexport default x;\n",
		"src/routes/user.ts": "export const path = '/users';\n",
		"README.md":          "# nope\n",
		"styles/main.css":    "body {}\n",
	})

	files, err := newTestScanner().Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 source files, got %d", len(files))
	}
	for _, f := range files {
		if filepath.IsAbs(f.RelPath) {
			t.Errorf("expected relative path, got %s", f.RelPath)
		}
		if f.Content == "" {
			t.Errorf("expected content for %s", f.RelPath)
		}
	}
}

func TestScan_PrunesExcludedDirs(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"node_modules/express/index.js": "module.exports = {};\n",
		"dist/app.js":                   "console.log('built');\n",
	})

	files, err := newTestScanner().Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files from excluded dirs, got %d", len(files))
	}
}

func TestScan_MissingRootIsFatal(t *testing.T) {
	if _, err := newTestScanner().Scan("/no/such/dir"); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestScan_FileRootIsFatal(t *testing.T) {
	dir := writeFiles(t, map[string]string{"app.ts": "export {};\n"})
	if _, err := newTestScanner().Scan(filepath.Join(dir, "app.ts")); err == nil {
		t.Fatalf("expected error when root is a file")
	}
}

func TestWalk_IsRestartable(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.ts": "export const a = 1;\n",
		"b.ts": "export const b = 2;\n",
	})

	s := newTestScanner()
	var first, second []string
	s.Walk(dir, func(f File) error { first = append(first, f.RelPath); return nil })
	s.Walk(dir, func(f File) error { second = append(second, f.RelPath); return nil })

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 files on both walks, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("walk order differs: %v vs %v", first, second)
		}
	}
}
