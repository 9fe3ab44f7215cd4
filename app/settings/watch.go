package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wieku/hitmeter/framework/logging"
)

// Watch reloads the settings file whenever it's written and passes valid results to fn.
// Invalid edits are logged and ignored. It blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, fn func(*Settings)) error {
	logger = logging.OrNop(logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	defer watcher.Close()

	path = filepath.Clean(path)

	// Editors often replace the file instead of writing to it, so the directory is watched.
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}

			s, err := Load(path)
			if err != nil {
				logger.Warn("Settings not reloaded, keeping previous ones", zap.String("path", path), zap.Error(err))
				continue
			}

			logger.Info("Settings reloaded", zap.String("path", path))

			fn(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error("Settings watcher failed", zap.Error(err))
		}
	}
}
