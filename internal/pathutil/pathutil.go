// Package pathutil provides small filesystem path helpers shared across the
// scanning pipeline.
package pathutil

import (
	"os"
	"strings"
	"sync"
)

var (
	homeDir     string
	homeDirOnce sync.Once
)

// cachedHomeDir returns the user's home directory, cached after the first call.
func cachedHomeDir() string {
	homeDirOnce.Do(func() {
		homeDir, _ = os.UserHomeDir()
	})
	return homeDir
}

// ExpandHome expands a leading ~/ to the user's home directory.
// Returns the path unchanged if it doesn't start with ~/ or if the home
// directory cannot be determined.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home := cachedHomeDir()
	if home == "" {
		return path
	}
	return home + path[1:]
}

// NormalizeSlashes converts backslashes to forward slashes, for comparing
// paths pulled out of Windows-flavored crash logs against POSIX-style
// staging directories.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// IsUnder reports whether candidate's normalized path contains needle as a
// path segment, case-insensitively (e.g. IsUnder("Mods/BodySlide/x.tga",
// "bodyslide") == true).
func IsUnder(candidate, needle string) bool {
	needle = strings.ToLower(needle)
	for _, segment := range strings.Split(strings.ToLower(NormalizeSlashes(candidate)), "/") {
		if segment == needle {
			return true
		}
	}
	return false
}
