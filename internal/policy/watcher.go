package policy

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the keyword file whenever it changes on disk, until the
// context is cancelled. A no-op in model mode or without a policy file.
func (c *Classifier) Watch(ctx context.Context) error {
	if c.mode != ModeKeywords || c.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				if err := c.Reload(); err != nil {
					c.log.Error("policy reload failed", slog.String("path", c.path), slog.Any("error", err))
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Error("policy watcher error", slog.Any("error", err))
		}
	}
}
