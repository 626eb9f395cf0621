// File: watch.go
// Title: Configuration File Watching
// Description: Reloads configuration on file changes using fsnotify and
//              notifies registered change handlers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17

package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

// DefaultWatchDebounce groups bursts of write events from editors
const DefaultWatchDebounce = 100 * time.Millisecond

// Watch blocks until ctx is done, reloading the backing file whenever it
// changes. Handlers registered with OnChange receive a snapshot of the
// previous configuration and the receiver. Parse failures keep the old
// values and are reported through onError when it is non-nil.
func (c *Config) Watch(ctx context.Context, onError func(error)) error {
	if c.filePath == "" {
		return gloxerror.New("configuration has no backing file").
			WithCode(gloxerror.CodeInvalidInput).
			WithOperation("config.Watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return gloxerror.Wrap(err, "failed to create file watcher").
			WithCode(gloxerror.CodeInternal).
			WithOperation("config.Watch")
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-on-save is seen.
	target := filepath.Clean(c.filePath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return gloxerror.Wrap(err, "failed to watch config directory").
			WithCode(gloxerror.CodeConfigError).
			WithOperation("config.Watch").
			WithDetail("filePath", c.filePath)
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DefaultWatchDebounce)
			} else {
				timer.Reset(DefaultWatchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := c.Reload(); err != nil && onError != nil {
				onError(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(gloxerror.Wrap(err, "file watcher error").
					WithCode(gloxerror.CodeInternal).
					WithOperation("config.Watch"))
			}
		}
	}
}

// Reload re-reads the backing file and notifies change handlers
func (c *Config) Reload() error {
	content, err := os.ReadFile(c.filePath)
	if err != nil {
		return gloxerror.Wrap(err, "failed to reread config file").
			WithCode(gloxerror.CodeConfigError).
			WithOperation("config.Reload").
			WithDetail("filePath", c.filePath)
	}
	data, err := parseContent(content, c.format)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := &Config{
		data:      c.data,
		defaults:  c.defaults,
		filePath:  c.filePath,
		format:    c.format,
		envPrefix: c.envPrefix,
	}
	c.data = data
	handlers := append([]ChangeHandler(nil), c.handlers...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(old, c)
	}
	return nil
}
