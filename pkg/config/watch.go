package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/pagewin/pkg/log"
)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file, so editors that
// replace the file on save are still seen.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = fsw.Add(filepath.Dir(abs))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("add path to watcher: %w", err), fsw.Close())
	}

	return &Watcher{fsw: fsw, path: abs}, nil
}

// Run calls onLoad with each successfully reloaded config until ctx is done
// or the watcher is closed. Invalid configs are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onLoad func(*Config)) {
	logger := log.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(evt.Name) != w.path || evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			c, err := Load(w.path)
			if err != nil {
				logger.WarnContext(ctx, "ignore invalid config", slog.String("path", w.path), slog.Any("error", err))
				continue
			}

			logger.DebugContext(ctx, "reloaded config", slog.String("path", w.path))
			onLoad(c)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			logger.ErrorContext(ctx, "watch config", slog.Any("error", err))
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close() //nolint:wrapcheck // Return the original error.
}
