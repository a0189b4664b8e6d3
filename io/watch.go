package io

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"daynight-engine/profile"
)

// Watcher reloads a profile file whenever it changes on disk and publishes
// each successfully parsed profile on Profiles. It never touches a running
// controller; the render loop drains Profiles between ticks.
type Watcher struct {
	Profiles <-chan *profile.Profile

	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	out     chan *profile.Profile
}

// WatchProfile starts watching path. The parent directory is watched so
// editors that save by renaming over the file are picked up. The watcher
// stops, and Profiles is closed, when ctx is done.
func WatchProfile(ctx context.Context, path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *profile.Profile, 1)
	w := &Watcher{
		Profiles: out,
		path:     abs,
		logger:   logger.With("path", abs),
		watcher:  fw,
		out:      out,
	}
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.out)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			p, err := LoadProfile(w.path)
			if err != nil {
				w.logger.Warn("profile reload failed", "error", err)
				continue
			}
			w.logger.Info("profile reloaded", "profile", p.Name, "keyframes", len(p.Keyframes))
			w.publish(ctx, p)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// publish replaces any profile the consumer has not picked up yet, so a
// slow render loop only ever sees the newest file.
func (w *Watcher) publish(ctx context.Context, p *profile.Profile) {
	for {
		select {
		case w.out <- p:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-w.out:
		default:
		}
	}
}
