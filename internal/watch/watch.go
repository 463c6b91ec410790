// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     watch
// Description: Debounced single-file watcher built on fsnotify
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/raft/foundation/core/error"
	mdwlog "github.com/msto63/raft/foundation/core/log"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the file contents after each settled change
type Handler func(path string, content []byte)

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	Logger   *mdwlog.Logger
}

// Watcher reports changes of one file. The parent directory is watched so
// editors that replace the file on save are handled.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	logger   *mdwlog.Logger
	watcher  *fsnotify.Watcher
}

// New starts watching path. Run must be called to deliver events.
func New(path string, handler Handler, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("path", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, mdwerror.Wrap(err, "file not found").
			WithCode(mdwerror.CodeNotFound).
			WithDetail("path", abs)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").WithCode(mdwerror.CodeInternal)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeInternal).
			WithDetail("dir", filepath.Dir(abs))
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		logger:   logger.WithField("component", "raft-watch").WithField("file", abs),
		watcher:  fw,
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers debounced changes to the handler until ctx is cancelled.
// The handler runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	w.logger.Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("stopping file watcher (context cancelled)")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.logger.Debug("file moved away", mdwlog.Fields{"op": event.Op.String()})
				}
				continue
			}

			// Restart the quiet period on every change
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			content, err := os.ReadFile(w.path)
			if err != nil {
				w.logger.Warn("file not readable", mdwlog.Fields{"error": err.Error()})
				continue
			}
			w.logger.Debug("file changed", mdwlog.Fields{"bytes": len(content)})
			w.handler(w.path, content)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorWithErr("watcher error", err)
		}
	}
}
