package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"desk-replica/internal/logger"
)

// textureWatcher reports edits to files in the texture directory so the
// scene can be prepared again with the new images.
type textureWatcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

func newTextureWatcher(dir string) (*textureWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("texture watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	tw := &textureWatcher{
		watcher: w,
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go tw.loop()
	return tw, nil
}

func (tw *textureWatcher) loop() {
	for {
		select {
		case <-tw.done:
			return
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				// One pending notification is enough; the reload reads every file.
				select {
				case tw.changed <- event.Name:
				default:
				}
			}
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("texture watcher error", zap.Error(err))
		}
	}
}

// Changed reports whether any texture file changed since the last call.
// It never blocks.
func (tw *textureWatcher) Changed() (string, bool) {
	select {
	case name := <-tw.changed:
		return name, true
	default:
		return "", false
	}
}

func (tw *textureWatcher) Close() error {
	close(tw.done)
	return tw.watcher.Close()
}
