// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     watch
// Description: Re-parses a source file whenever it changes on disk
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
)

// DefaultDebounce is used when Config.Debounce is zero
const DefaultDebounce = 150 * time.Millisecond

// Report is delivered after every parse of the watched file
type Report struct {
	Path   string
	Result *lox.Result // nil when Err is set
	Err    error       // read failure or rejected source
	At     time.Time
}

// Handler receives reports. Calls are serialized.
type Handler func(Report)

// Config contains configuration for the watcher
type Config struct {
	// Path is the source file to watch
	Path string

	// Debounce is the quiet period after the last event before re-parsing
	Debounce time.Duration

	// Frontend parses the file (default: lox.New with the watcher's logger)
	Frontend *lox.Frontend
}

// Watcher watches one source file
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *gloxlog.Logger
	config   Config
	debounce *Debouncer
	frontend *lox.Frontend

	handlerMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. The file must exist.
func New(cfg Config, logger *gloxlog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = gloxlog.GetDefault()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, gloxerror.Wrap(err, "cannot watch source file").
			WithCode(gloxerror.CodeNotFound).
			WithOperation("watch.New").
			WithDetail("path", cfg.Path)
	}
	if info.IsDir() {
		return nil, gloxerror.New("watch target is a directory").
			WithCode(gloxerror.CodeInvalidInput).
			WithOperation("watch.New").
			WithDetail("path", cfg.Path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to create fsnotify watcher").
			WithCode(gloxerror.CodeInternal).
			WithOperation("watch.New")
	}

	logger = logger.WithField("component", "watch")
	frontend := cfg.Frontend
	if frontend == nil {
		frontend = lox.New(lox.Options{Logger: logger})
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		frontend: frontend,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch parses the file once, then again after every change, until ctx is
// cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, handler Handler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return gloxerror.New("watcher already running").
			WithCode(gloxerror.CodeInvalidInput).
			WithOperation("watch.Watch")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()
		close(w.doneCh)
	}()

	target := filepath.Clean(w.config.Path)

	// The directory is watched so editors that save by rename are seen.
	if err := w.watcher.Add(filepath.Dir(target)); err != nil {
		return gloxerror.Wrap(err, "failed to watch directory").
			WithCode(gloxerror.CodeInternal).
			WithOperation("watch.Watch").
			WithDetail("path", w.config.Path)
	}

	w.logger.Info("File watcher started", gloxlog.Fields{
		"path":        w.config.Path,
		"debounce_ms": w.config.Debounce.Milliseconds(),
	})

	w.parse(handler)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !shouldProcess(event, target) {
				continue
			}

			w.logger.Debug("File event detected", gloxlog.Fields{
				"path": event.Name,
				"op":   event.Op.String(),
			})
			w.debounce.Trigger(func() { w.parse(handler) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorWithErr("File watcher error", err)
		}
	}
}

// Stop ends a running Watch and waits for it to return
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) parse(handler Handler) {
	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()

	report := Report{Path: w.config.Path, At: time.Now()}

	content, err := os.ReadFile(w.config.Path)
	if err != nil {
		report.Err = gloxerror.Wrap(err, "failed to read source file").
			WithCode(gloxerror.CodeNotFound).
			WithOperation("watch.parse").
			WithDetail("path", w.config.Path)
	} else {
		report.Result, report.Err = w.frontend.Parse(string(content))
	}

	if report.Err != nil {
		w.logger.LogError(report.Err)
	} else {
		w.logger.Debug("Source re-parsed", gloxlog.Fields{
			"path":        w.config.Path,
			"diagnostics": len(report.Result.Diagnostics),
		})
	}

	if handler != nil {
		handler(report)
	}
}

func shouldProcess(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
