package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Aman-s12345/go-routescope/internal/analyzer"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher triggers a callback when controller or route sources change.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	log      logrus.FieldLogger
}

// New watches <root>/controllers and <root>/routes.
func New(root string, debounce time.Duration, log logrus.FieldLogger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Watcher{
		dirs: []string{
			filepath.Join(root, analyzer.ControllersDir),
			filepath.Join(root, analyzer.RoutesDir),
		},
		debounce: debounce,
		log:      log.WithField("component", "watcher"),
	}
}

// Run blocks until ctx is cancelled. Bursts of events within the debounce window produce one onChange call.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, dir := range w.dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			w.log.WithField("dir", dir).Warn("directory not found, not watching")
			continue
		}
		if err := fsw.Add(dir); err != nil {
			w.log.WithError(err).WithField("dir", dir).Warn("failed to watch directory")
			continue
		}
		watched++
		w.log.WithField("dir", dir).Info("watching for changes")
	}
	if watched == 0 {
		return fmt.Errorf("no directories to watch")
	}

	// Reset discards any pending fire, so no draining is needed.
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("source changed")
			timer.Reset(w.debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}
