package preview

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DocumentExt is the extension of page documents.
const DocumentExt = ".json"

// Change represents a detected document change.
type Change struct {
	Path    string
	Removed bool
}

// Watcher polls a directory for document changes.
type Watcher struct {
	dir        string
	interval   time.Duration
	onChange   func(Change)
	mu         sync.Mutex
	timestamps map[string]time.Time
}

// NewWatcher creates a watcher for the *.json files directly inside dir.
func NewWatcher(dir string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		dir:        dir,
		interval:   interval,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for document changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.scanInitial()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.mu.Lock()
			callback := w.onChange
			w.mu.Unlock()

			for _, change := range w.poll() {
				if callback != nil {
					callback(change)
				}
			}
		}
	}
}

// scanInitial records the current modification times without reporting.
func (w *Watcher) scanInitial() {
	current := w.scan()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.timestamps = current
}

// poll compares the directory against the last scan and returns the
// changes, sorted by path.
func (w *Watcher) poll() []Change {
	current := w.scan()

	w.mu.Lock()
	defer w.mu.Unlock()

	var changes []Change
	for p, modTime := range current {
		lastMod, exists := w.timestamps[p]
		if !exists || !modTime.Equal(lastMod) {
			changes = append(changes, Change{Path: p})
		}
	}
	for p := range w.timestamps {
		if _, ok := current[p]; !ok {
			changes = append(changes, Change{Path: p, Removed: true})
		}
	}
	w.timestamps = current

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

func (w *Watcher) scan() map[string]time.Time {
	found := make(map[string]time.Time)

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return found
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found[filepath.Join(w.dir, entry.Name())] = info.ModTime()
	}
	return found
}

// isDocument reports whether name is a visible document file.
func isDocument(name string) bool {
	return strings.HasSuffix(name, DocumentExt) && !strings.HasPrefix(name, ".")
}
