package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/classic-scan/classic/internal/lockutil"
)

// document is one YAML file behind the Store. Immutable documents are
// loaded once and cached forever; mutable documents re-check the file's
// mtime on every access (§4.1).
type document struct {
	mu       sync.RWMutex
	path     string
	mutable  bool
	loaded   bool
	modTime  time.Time
	root     map[string]any
	memo     map[string]any // only populated for immutable documents
	logger   *logrus.Logger
}

func newDocument(path string, mutable bool, logger *logrus.Logger) *document {
	return &document{
		path:    path,
		mutable: mutable,
		logger:  logger,
		memo:    make(map[string]any),
	}
}

// ensureFresh loads the document if it hasn't been loaded yet, and for
// mutable documents reloads it whenever the on-disk mtime has advanced
// (§4.1 invalidation, §8 "Configuration mtime invalidation").
func (d *document) ensureFresh() {
	d.mu.Lock()
	defer d.mu.Unlock()

	info, statErr := os.Stat(d.path)
	if statErr != nil {
		if !d.loaded {
			d.root = map[string]any{}
			d.loaded = true
			d.logger.WithError(statErr).WithField("path", d.path).Debug("config document missing, using empty defaults")
		}
		return
	}

	if d.loaded && (!d.mutable || !info.ModTime().After(d.modTime)) {
		return
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		d.logger.WithError(err).WithField("path", d.path).Debug("config document unreadable, using empty defaults")
		if !d.loaded {
			d.root = map[string]any{}
			d.loaded = true
		}
		return
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		d.logger.WithError(err).WithField("path", d.path).Debug("config document malformed YAML, using empty defaults")
		root = map[string]any{}
	}
	if root == nil {
		root = map[string]any{}
	}

	d.root = root
	d.modTime = info.ModTime()
	d.loaded = true
	d.memo = make(map[string]any) // invalidate memoized lookups on reload
}

// snapshotRoot returns the current root mapping after ensuring freshness.
func (d *document) snapshotRoot() map[string]any {
	d.ensureFresh()
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root
}

// writeThrough serializes root and atomically replaces the file on disk
// (write-temp-then-rename, §4.1 "Writing is best-effort but atomic"). The
// write is additionally guarded by a cross-process advisory lock so two
// `classic` invocations racing a Set on the same document serialize instead
// of clobbering each other's temp file.
func (d *document) writeThrough(root map[string]any) error {
	if !d.mutable {
		d.logger.WithField("path", d.path).Warn("refusing to write immutable config document")
		return fmt.Errorf("config: %s is immutable", d.path)
	}

	release, err := lockutil.Acquire(d.path + ".lock")
	if err != nil {
		return fmt.Errorf("locking %s: %w", d.path, err)
	}
	defer release()

	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", d.path, err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file for %s: %w", d.path, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("renaming temp file for %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.root = root
	d.memo = make(map[string]any)
	if info, statErr := os.Stat(d.path); statErr == nil {
		d.modTime = info.ModTime()
	}
	d.loaded = true
	d.mu.Unlock()

	return nil
}
