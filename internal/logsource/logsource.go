// Package logsource implements the Log File Source (§4.4): crash-log
// discovery, the pre-scan reformat pass, and a per-scan line-array cache.
package logsource

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Source discovers and caches crash log files for the duration of one scan.
type Source struct {
	dir  string
	glob string

	mu    sync.Mutex
	cache map[string][]string
}

// New returns a Source that looks for files matching glob (e.g.
// "crash-*.log") directly under dir.
func New(dir, glob string) *Source {
	if glob == "" {
		glob = "crash-*.log"
	}
	return &Source{dir: dir, glob: glob, cache: make(map[string][]string)}
}

// Discover enumerates matching crash log files, sorted by path for a stable
// scan order (§4.4).
func (s *Source) Discover() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, s.glob))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Lines lazily reads and caches path's line array. Subsequent calls for the
// same path return the cached slice without touching disk again
// (§4.4 "initialize-on-first-read, idempotent").
func (s *Source) Lines(path string) ([]string, error) {
	s.mu.Lock()
	if cached, ok := s.cache[path]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(data))

	s.mu.Lock()
	s.cache[path] = lines
	s.mu.Unlock()

	return lines, nil
}

// Dispose frees the backing cache (§4.4).
func (s *Source) Dispose() {
	s.mu.Lock()
	s.cache = make(map[string][]string)
	s.mu.Unlock()
}

// ReformatAll runs Reformat over every path, once, at scan start (§4.4).
// A single file's reformat failure is recorded but does not abort the rest
// of the batch (§7 "no error from a single file may abort the batch").
func (s *Source) ReformatAll(paths []string, excludeSubstrings []string) map[string]error {
	failures := make(map[string]error)
	for _, path := range paths {
		if _, err := Reformat(path, excludeSubstrings); err != nil {
			failures[path] = err
		}
	}
	return failures
}

func splitLines(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	lines := strings.Split(data, "\n")
	return lines
}
