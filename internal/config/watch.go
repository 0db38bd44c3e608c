package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/martinnjensen/MetalWatch/internal/logger"
)

// Watch starts a background goroutine that reloads the config whenever the
// file changes and passes the result to onChange. A reload that fails to
// parse or validate is logged and skipped, keeping the previous config in
// effect. Call the returned stop function to clean up.
func Watch(path string, onChange func(*Config)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := Load(path)
					if err != nil {
						logger.Warn("config reload skipped", logger.Fields{
							"path":  path,
							"error": err.Error(),
						})
						continue
					}
					logger.Info("config reloaded", logger.Fields{"path": path})
					onChange(cfg)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
