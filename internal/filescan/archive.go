package filescan

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/classic-scan/classic/internal/archive"
)

const skippedArchiveName = "prp - main.ba2"

// ScanArchives walks root for `.ba2` archives and applies §4.11's "Archive
// scan": a 12-byte magic check, then a format-specific delegate to the
// external extractor.
func ScanArchives(ctx context.Context, root, extractorPath string) (*Result, error) {
	result := NewResult()

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ba2") {
			return nil
		}
		if strings.EqualFold(filepath.Base(path), skippedArchiveName) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		return scanOneArchive(ctx, result, extractorPath, path, rel)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func scanOneArchive(ctx context.Context, result *Result, extractorPath, path, rel string) error {
	kind, ok := readBA2Kind(path)
	if !ok {
		result.BA2WrongFormat.add(rel)
		return nil
	}

	switch kind {
	case "DX10":
		entries, err := archive.Dump(ctx, extractorPath, path)
		if err != nil {
			if errors.Is(err, archive.ErrExtractorFailed) {
				result.BA2WrongFormat.add(rel)
				return nil
			}
			return err
		}
		for _, e := range entries {
			if e.Extension != "dds" {
				result.BA2WrongTextureFormat.add(rel + " :: " + e.Path)
			}
			if e.Width%2 != 0 || e.Height%2 != 0 {
				result.BA2OddDimensions.add(rel + " :: " + e.Path)
			}
		}
	case "GNRL":
		members, err := archive.List(ctx, extractorPath, path)
		if err != nil {
			if errors.Is(err, archive.ErrExtractorFailed) {
				result.BA2WrongFormat.add(rel)
				return nil
			}
			return err
		}
		for _, member := range members {
			ext := strings.ToLower(filepath.Ext(member))
			switch ext {
			case ".tga", ".png":
				if !strings.Contains(strings.ToLower(member), "bodyslide") {
					result.WrongTextureFormat.add(rel + " :: " + member)
				}
			case ".mp3", ".m4a":
				result.WrongSoundFormat.add(rel + " :: " + member)
			}
		}
	}
	return nil
}

// readBA2Kind reads a .ba2's first 12 bytes and returns "DX10" or "GNRL" if
// the magic matches, else ("", false) (§4.11).
func readBA2Kind(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return "", false
	}
	if string(header[0:4]) != "BTDX" {
		return "", false
	}
	kind := string(header[8:12])
	if kind != "DX10" && kind != "GNRL" {
		return "", false
	}
	return kind, true
}
