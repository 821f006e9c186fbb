package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow swallows the bursts of events editors produce on save.
const debounceWindow = 200 * time.Millisecond

// Watch watches the config file at path and calls onReload with the
// freshly loaded configuration after each change. A change that fails
// to load is logged and skipped; the previous configuration stays
// active. Close the returned watcher to stop.
func Watch(path string, onReload func(cfg *Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watching the directory survives the rename-and-replace dance most
	// editors do on save.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	base := filepath.Base(path)

	go func() {
		var last time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) {
					continue
				}
				if time.Since(last) < debounceWindow {
					continue
				}
				last = time.Now()

				cfg, err := Load(path)
				if err != nil {
					log.Printf("config reload failed: %v", err)
					continue
				}
				onReload(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			}
		}
	}()

	return watcher, nil
}
