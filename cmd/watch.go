package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the bursts of events editors emit for one save
const watchDebounce = 200 * time.Millisecond

// watchScene calls render after the file at path changes, until ctx is done.
// The parent directory is watched so that editors which replace the file
// on save are still seen. Render errors are logged and watching continues.
func watchScene(ctx context.Context, path string, debounce time.Duration, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == target && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("file watcher: %v", err)
		case <-pending:
			pending = nil
			if err := render(); err != nil {
				logger.Errorf("render failed: %v", err)
			}
		}
	}
}
