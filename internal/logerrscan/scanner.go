// Package logerrscan implements the Log-Error Scan (§4.12): it walks
// documents/game `.log` files for lines matching a catch/exclude substring
// policy, using best-effort encoding detection for files that aren't
// plain UTF-8.
package logerrscan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Entry is one file's worth of flagged lines (§4.12).
type Entry struct {
	Path  string
	Lines []string
}

// Scan walks root for `*.log` files (excluding any whose name contains
// "crash-" and any whose path contains an excludeFiles substring), decodes
// each with DecodeBestEffort, and reports every line whose lowercased form
// contains a catchErrors substring but none of the excludeErrors substrings
// (§4.12).
func Scan(root string, catchErrors, excludeErrors, excludeFiles []string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".log") {
			return nil
		}
		if strings.Contains(strings.ToLower(filepath.Base(path)), "crash-") {
			return nil
		}
		if containsAnyFold(path, excludeFiles) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text, err := DecodeBestEffort(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		var flagged []string
		for _, line := range strings.Split(text, "\n") {
			lower := strings.ToLower(line)
			if containsAnyFold(lower, catchErrors) && !containsAnyFold(lower, excludeErrors) {
				flagged = append(flagged, strings.TrimRight(line, "\r"))
			}
		}
		if len(flagged) > 0 {
			entries = append(entries, Entry{Path: path, Lines: flagged})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func containsAnyFold(s string, substrings []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if sub == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16leBOM = []byte{0xFF, 0xFE}
	utf16beBOM = []byte{0xFE, 0xFF}
)

// DecodeBestEffort sniffs a byte-order mark and decodes accordingly; with
// no BOM present it falls back to Windows-1252, the common legacy encoding
// for these game logs, which can represent every byte value and therefore
// never itself fails to decode (§4.12 "best-effort encoding detection").
func DecodeBestEffort(data []byte) (string, error) {
	switch {
	case hasPrefix(data, utf8BOM):
		return string(data[len(utf8BOM):]), nil
	case hasPrefix(data, utf16leBOM):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
	case hasPrefix(data, utf16beBOM):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data)
	default:
		return decodeWith(charmap.Windows1252, data)
	}
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasPrefix(data, prefix []byte) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}
	return true
}
