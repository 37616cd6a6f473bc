package app

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"wpm/pkg/logging"
)

// debounceInterval coalesces a burst of filesystem events (an editor's
// write-then-rename save sequence, a batch unzip of several unit files)
// into a single Reload.
const debounceInterval = 500 * time.Millisecond

// Watch starts an fsnotify watch on the unit directory and calls Reload
// once, debounced, for every burst of create/write/remove/rename events on
// a ".json" or ".toml" file. It runs until stopCh is closed, and returns the
// watcher-setup error, if any, without blocking the caller.
func (s *Services) Watch(stopCh <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.cfg.UnitDir); err != nil {
		watcher.Close()
		return err
	}

	go s.watchLoop(watcher, stopCh)
	return nil
}

func (s *Services) watchLoop(watcher *fsnotify.Watcher, stopCh <-chan struct{}) {
	defer watcher.Close()

	var mu sync.Mutex
	var timer *time.Timer
	scheduleReload := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceInterval, func() {
			if err := s.Reload(); err != nil {
				logging.Warn("app", "reload triggered by unit directory change failed: %v", err)
			}
		})
	}

	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isUnitFile(event.Name) {
				continue
			}
			scheduleReload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("app", "unit directory watch error: %v", err)
		}
	}
}

func isUnitFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".toml")
}
