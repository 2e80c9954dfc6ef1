package lsp

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
)

// DefaultDebounce is how long the watcher waits for bean file changes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the workspace when bean descriptions or the config change on disk.
// Bursts of events, as editors produce when saving, trigger one reload.
type Watcher struct {
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	mu   sync.Mutex
	dirs []string
	done chan struct{}
}

// NewWatcher watches dirs and calls onChange after relevant changes settle.
func NewWatcher(logger *zap.Logger, dirs []string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		logger:   logger,
		fsw:      fsw,
		onChange: onChange,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}

	w.SetDirs(dirs)

	go w.loop()

	return w, nil
}

// SetDirs replaces the watched directories.
func (w *Watcher) SetDirs(dirs []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, d := range w.dirs {
		if !slices.Contains(dirs, d) {
			_ = w.fsw.Remove(d)
		}
	}

	for _, d := range dirs {
		if slices.Contains(w.dirs, d) {
			continue
		}

		err := w.fsw.Add(d)
		if err != nil {
			w.logger.Warn("Cannot watch directory", zap.String("dir", d), zap.Error(err))
		}
	}

	w.dirs = slices.Clone(dirs)
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)

	return w.fsw.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	pending := false

	for {
		select {
		case <-w.done:
			timer.Stop()

			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if !relevantChange(event) {
				continue
			}

			w.logger.Debug("Bean file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}

			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if pending {
				pending = false
				w.onChange()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}

// relevantChange reports whether event touches a bean description or a config file.
func relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") {
		return false
	}

	if slices.Contains(beancomplete.DefaultConfigNames, base) {
		return true
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".beans", ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
