package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/homekeep-labs/homekeeper/constants"
)

type WatchConfig struct {
	Roots       []string            // directories to watch (recursive)
	AllowedExts map[string]struct{} // lowercase, without '.'
	InitialScan bool                // if true, walk roots and emit existing files
	Debounce    time.Duration       // coalesce rapid update/rename bursts
}

// StartWatcher watches the inbox directories recursively and emits paths of
// receipt files as they appear or change. The channels close when ctx is done.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		slog.Error("watcher start failed: no roots provided")
		return nil, nil, errors.New("no roots provided")
	}
	if cfg.AllowedExts == nil {
		cfg.AllowedExts = constants.AllowedExtensions
	}
	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	// Add roots recursively
	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && allowed(path, cfg.AllowedExts) {
				select {
				case evCh <- path:
				default:
				}
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			slog.Error("failed to add root directory", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() { _ = w.Close() }()

		// pending is only touched from this goroutine. The debounce timer
		// fires back into the select loop instead of running a callback, so
		// there is no concurrent map access however bursty the inbox gets.
		pending := map[string]struct{}{}
		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		sendPending := func() {
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				sendPending()
			case e := <-w.Events:
				// A created path may be a new directory: start watching it.
				if e.Op&fsnotify.Create == fsnotify.Create {
					tryAddDir(w, e.Name)
				}

				if allowed(e.Name, cfg.AllowedExts) && (e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename)) != 0 {
					pending[e.Name] = struct{}{}
					if cfg.Debounce > 0 {
						if !timer.Stop() {
							select {
							case <-timer.C:
							default:
							}
						}
						timer.Reset(cfg.Debounce)
					} else {
						sendPending()
					}
				}
			case err := <-w.Errors:
				slog.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func allowed(path string, exts map[string]struct{}) bool {
	ext := constants.NormalizeExt(filepath.Ext(path))
	_, ok := exts[ext]
	return ok
}

// tryAddDir best-effort adds a path to the watcher; non-directories fail
// silently.
func tryAddDir(w *fsnotify.Watcher, path string) {
	_ = w.Add(path)
}
