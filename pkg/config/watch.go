package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a scene file whenever it changes on disk.
type Watcher struct {
	path    string
	flags   Flags
	fs      *fsnotify.Watcher
	updates chan Config
	errs    chan error
}

// Watch starts watching path. Every successful reload (load, resolve with
// flags, validate) is delivered on Updates; failures go to Errors. Both
// channels are closed when ctx is done.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temp file are still seen.
func Watch(ctx context.Context, path string, flags Flags) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		flags:   flags,
		fs:      fsw,
		updates: make(chan Config),
		errs:    make(chan error),
	}
	go w.run(ctx)
	return w, nil
}

// Updates delivers each successfully reloaded config.
func (w *Watcher) Updates() <-chan Config { return w.updates }

// Errors delivers reload and watcher failures.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) run(ctx context.Context) {
	defer close(w.errs)
	defer close(w.updates)
	defer w.fs.Close()

	timer := time.NewTimer(reloadDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)

		case <-timer.C:
			cfg, err := LoadResolved(w.path, w.flags)
			if err != nil {
				select {
				case w.errs <- err:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case w.updates <- cfg:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- fmt.Errorf("config: watcher: %w", err):
			case <-ctx.Done():
				return
			}
		}
	}
}
