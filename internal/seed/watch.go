package seed

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the source's fixture file and reloads it after each write
// until ctx is cancelled. It calls cb (if non-nil) after every successful
// reload. Editors often replace files via rename, so the parent directory
// is watched and events are debounced before reloading.
func (s *Source) Watch(ctx context.Context, logger *slog.Logger, cb func()) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("seed watcher: started", slog.String("fixture", s.path))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("seed watcher: stopped")
			return nil

		case <-reloadCh:
			if err := s.Reload(); err != nil {
				logger.Warn("seed watcher: reload failed, keeping previous entries",
					slog.String("error", err.Error()))
				continue
			}
			logger.Info("seed watcher: fixture reloaded", slog.Int("entries", len(s.Entries())))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("seed watcher: error", slog.String("error", err.Error()))
		}
	}
}
