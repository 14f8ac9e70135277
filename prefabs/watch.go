package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies which kind of prefab asset was edited.
type ChangeKind string

const (
	ChangeEncounter ChangeKind = "encounter"
	ChangeScript    ChangeKind = "script"
)

// Change identifies an edited prefab asset: the enemy name for
// encounter yaml, the script filename for movement scripts.
type Change struct {
	Kind ChangeKind
	Name string
}

// Watcher reports edits to encounter specs and movement scripts so a
// debug session can rebuild the fight without restarting.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			ch, ok := classify(event.Name)
			if !ok {
				continue
			}
			// editors fire bursts of events per save; collapse them
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			w.Events <- ch
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

// classify maps an edited path to the prefab asset it backs. Paths that
// are neither encounter yaml nor tengo scripts are ignored.
func classify(path string) (Change, bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".yaml", ".yml":
		return Change{Kind: ChangeEncounter, Name: strings.TrimSuffix(base, filepath.Ext(base))}, true
	case ".tengo":
		return Change{Kind: ChangeScript, Name: base}, true
	}
	return Change{}, false
}
