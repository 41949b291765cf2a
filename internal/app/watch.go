package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the checks once and again after every settled change under the
// configured paths, until ctx is cancelled. Check failures are printed and
// logged but do not stop the loop.
func (a *App) Watch(ctx context.Context) error {
	ctx = a.withLogger(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := a.addWatches(watcher); err != nil {
		return err
	}

	a.runOnce(ctx)

	timer := time.NewTimer(a.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Watch loop stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						a.logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
				}
			}
			a.logger.Debug("File change detected.", "path", event.Name, "op", event.Op.String())
			timer.Reset(a.config.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("File watcher error.", "error", err)
		case <-timer.C:
			a.runOnce(ctx)
		}
	}
}

func (a *App) runOnce(ctx context.Context) {
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Info("Check finished with failures.", "error", err)
	}
}

// addWatches registers every configured path. A file is watched through its
// parent directory so editors that replace files on save keep triggering.
func (a *App) addWatches(watcher *fsnotify.Watcher) error {
	seen := make(map[string]struct{})
	add := func(dir string) error {
		if _, ok := seen[dir]; ok {
			return nil
		}
		seen[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}

	for _, root := range a.config.Paths {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := add(filepath.Dir(root)); err != nil {
				return err
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
