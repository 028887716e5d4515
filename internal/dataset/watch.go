package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

// DefaultDebounce coalesces the burst of events an editor or exporter emits
// for one save.
const DefaultDebounce = 250 * time.Millisecond

// Handler receives each reload. A failed reload passes the error and leaves
// it to the caller to keep the previous dataset.
type Handler func(core.Dataset, error)

// Watch reloads path whenever it changes until ctx is cancelled. The parent
// directory is watched so that atomic rename-into-place writes are seen.
func Watch(ctx context.Context, path string, debounce time.Duration, handler Handler) error {
	if path == "" {
		return ErrNoDataPath
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving dataset path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
					continue
				}
				timer.Reset(debounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Debug("dataset: watcher error")
			case <-timer.C:
				ds, err := Load(abs)
				if err != nil {
					log.WithError(err).Debug("dataset: reload failed")
				}
				handler(ds, err)
			}
		}
	}()
	return nil
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create)
}
