package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
)

func TestRunDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, analyzer.ControllersDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	w := New(root, 100*time.Millisecond, nil)
	go func() {
		done <- w.Run(ctx, func() { calls.Add(1) })
	}()

	// let the watcher register its directories
	time.Sleep(200 * time.Millisecond)

	for _, name := range []string{"auth.controller.js", "user.controller.js", "order.controller.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("const x = async () => {};\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunWithoutDirectories(t *testing.T) {
	w := New(t.TempDir(), 0, nil)
	assert.Equal(t, DefaultDebounce, w.debounce)

	err := w.Run(context.Background(), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no directories to watch")
}

func TestNewWatchesControllersAndRoutes(t *testing.T) {
	w := New("/project", time.Second, nil)
	assert.Equal(t, []string{
		filepath.Join("/project", "controllers"),
		filepath.Join("/project", "routes"),
	}, w.dirs)
}
