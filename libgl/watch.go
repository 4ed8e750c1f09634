package libgl

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports shader files that changed on disk. Editors tend to
// write a file in several steps, so events for the same file are merged
// until it has been quiet for the debounce interval.
type ShaderWatcher struct {
	watcher  *fsnotify.Watcher
	changes  chan string
	debounce time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	closeErr error
}

func NewShaderWatcher(dir string, debounce time.Duration) (*ShaderWatcher, error) {
	if debounce < 10*time.Millisecond {
		debounce = 10 * time.Millisecond
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	sw := &ShaderWatcher{
		watcher:  watcher,
		changes:  make(chan string, 16),
		debounce: debounce,
		done:     make(chan struct{}),
	}
	sw.wg.Add(1)
	go sw.run()
	return sw, nil
}

// Changes delivers base names of changed files. It is closed by Close.
func (sw *ShaderWatcher) Changes() <-chan string {
	return sw.changes
}

func (sw *ShaderWatcher) run() {
	defer sw.wg.Done()
	defer close(sw.changes)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(sw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[filepath.Base(event.Name)] = time.Now()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Shader watcher")
		case now := <-ticker.C:
			for name, last := range pending {
				if now.Sub(last) < sw.debounce {
					continue
				}
				delete(pending, name)
				select {
				case sw.changes <- name:
				case <-sw.done:
					return
				}
			}
		}
	}
}

// Close stops watching. Later calls return the result of the first.
func (sw *ShaderWatcher) Close() error {
	sw.once.Do(func() {
		close(sw.done)
		sw.closeErr = sw.watcher.Close()
		sw.wg.Wait()
	})
	return sw.closeErr
}
