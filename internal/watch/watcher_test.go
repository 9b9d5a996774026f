package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuscan/cli/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_BurstTriggersSingleRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.ts"), "export {}")

	var runs atomic.Int32
	w := New(dir, nil, 100*time.Millisecond, &logger.StdoutLogger{}, func(ctx context.Context) {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// give the watcher time to register before producing events
	time.Sleep(200 * time.Millisecond)

	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "app.ts"), "export {} //")
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "a burst of writes must coalesce into one run")

	cancel()
	require.NoError(t, <-errCh)
}

func TestWatcher_IgnoresExcludedPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "app.ts"), "export {}")
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), "module.exports = {}")

	var runs atomic.Int32
	w := New(dir, []string{"node_modules"}, 100*time.Millisecond, &logger.StdoutLogger{}, func(ctx context.Context) {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), "module.exports = {v:2}")

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load(), "changes under excluded paths must not trigger a run")

	writeFile(t, filepath.Join(dir, "src", "app.ts"), "export const x = 1")

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	cancel()
	require.NoError(t, <-errCh)
}

func TestWatcher_MissingRootFails(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "gone"), nil, 50*time.Millisecond, &logger.StdoutLogger{}, func(ctx context.Context) {})
	err := w.Run(context.Background())
	assert.Error(t, err)
}
