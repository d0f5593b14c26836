package gradle

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher signals when any build descriptor under a project root changes, so
// a long-running consumer can rescan and re-resolve. Events are debounced:
// bulk edits (branch switches, refactors) collapse into a single signal.
type Watcher struct {
	root     string
	opts     Options
	debounce time.Duration
	logger   *logrus.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher over every directory under root.
func NewWatcher(root string, opts Options, debounce time.Duration, logger *logrus.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		opts:     opts,
		debounce: debounce,
		logger:   logger,
		watcher:  fsw,
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers one tick on changed for every debounced burst of descriptor
// changes. It blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, changed chan<- struct{}) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// New directories need to be watched for descriptors created later.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignoredDir(event.Name) {
					if err := w.watcher.Add(event.Name); err != nil {
						w.logger.WithError(err).WithField("dir", event.Name).Warn("failed to watch new directory")
					}
				}
			}
			if filepath.Base(event.Name) != w.opts.descriptor() {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.WithField("descriptor", event.Name).Debug("descriptor changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case changed <- struct{}{}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("watcher error")
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignoredDir(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) ignoredDir(path string) bool {
	base := filepath.Base(path)
	for _, name := range w.opts.IgnoreDirs {
		if base == name {
			return true
		}
	}
	return false
}
