package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
)

// Watch calls onChange from a background goroutine whenever the file at path
// is written or replaced. The parent directory is watched so that saves done
// through a rename keep being seen. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func()) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					logger.Debug("project file changed", zap.String("path", path), zap.Stringer("op", ev.Op))
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", zap.Error(err))
			}
		}
	}()
	return nil
}

// Reloader re-imports the project on the frame after a change was signaled.
// Signal may be called from any goroutine. Changes that only echo the
// editor's own export are skipped.
type Reloader struct {
	exporter   *StorageExporter
	logger     *zap.Logger
	pending    atomic.Bool
	unregister editor.Unregister
}

func NewReloader(core *editor.Core, exporter *StorageExporter, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloader{exporter: exporter, logger: logger.Named("reload")}
	r.unregister = core.RegisterUpdatable(r)
	return r
}

func (r *Reloader) Signal() { r.pending.Store(true) }

func (r *Reloader) Pending() bool { return r.pending.Load() }

func (r *Reloader) Dispose() { r.unregister() }

func (r *Reloader) OnPreUpdate() {
	if !r.pending.Swap(false) {
		return
	}
	replaced, err := r.exporter.Reload()
	if err != nil {
		r.logger.Warn("reload failed", zap.Error(err))
		return
	}
	if replaced {
		r.logger.Info("project reloaded", zap.String("name", r.exporter.Name()))
	}
}

func (r *Reloader) OnPostUpdate() {}
