package filescan

import (
	"encoding/binary"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const cleanedFilesSubdir = "CLASSIC Backup/Cleaned Files"

var docKeywords = []string{"readme", "changes", "changelog", "change log"}
var docExtensions = map[string]bool{".txt": true, ".rtf": true, ".pdf": true, ".doc": true, ".docx": true}

// ScanLooseFiles walks root (a mod-staging directory) and classifies every
// file per §4.11's "Loose-file mod scan". Documentation files and `fomod`
// folders are relocated into backupRoot, mirroring their path relative to
// root; deleteAfterRelocate controls whether the original is removed after
// the copy succeeds.
func ScanLooseFiles(root, backupRoot string, xseHashedScripts []string, deleteAfterRelocate bool) (*Result, error) {
	result := NewResult()
	hashedScripts := make(map[string]bool, len(xseHashedScripts))
	for _, name := range xseHashedScripts {
		hashedScripts[strings.ToLower(name)] = true
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if strings.EqualFold(d.Name(), "fomod") {
				result.FomodFolders.add(rel)
				if err := relocate(path, filepath.Join(backupRoot, rel), true, deleteAfterRelocate); err != nil {
					return err
				}
				return filepath.SkipDir
			}
			if strings.EqualFold(d.Name(), "animationfiledata") {
				result.AnimationFileData.add(rel)
			}
			return nil
		}

		classifyFile(result, root, backupRoot, rel, path, hashedScripts, deleteAfterRelocate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func classifyFile(result *Result, root, backupRoot, rel, path string, hashedScripts map[string]bool, deleteAfterRelocate bool) {
	lowerBase := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	if docExtensions[ext] && containsAny(lowerBase, docKeywords) {
		result.Documentation.add(rel)
		_ = relocate(path, filepath.Join(backupRoot, rel), false, deleteAfterRelocate)
		return
	}

	switch ext {
	case ".dds":
		if w, h, ok := ddsDimensions(path); ok && (w%2 != 0 || h%2 != 0) {
			result.WrongDDSDimensions.add(rel)
		}
		return
	case ".tga", ".png":
		if !strings.Contains(strings.ToLower(rel), "bodyslide") {
			result.WrongTextureFormat.add(rel)
		}
		return
	case ".mp3", ".m4a":
		result.WrongSoundFormat.add(rel)
		return
	case ".uvd":
		result.PrevisLooseFiles.add(rel)
		return
	}

	if strings.HasSuffix(lowerBase, "_oc.nif") {
		result.PrevisLooseFiles.add(rel)
		return
	}

	if hashedScripts[lowerBase] && underScriptsPath(rel) && !strings.Contains(strings.ToLower(rel), "workshop framework") {
		result.XSEScriptCopies.add(rel)
	}
}

func underScriptsPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.EqualFold(part, "scripts") {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ddsDimensions reads a DDS file's 20-byte header and returns its declared
// width/height if the magic matches (§4.11).
func ddsDimensions(path string) (width, height int, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	header := make([]byte, 20)
	if _, err := io.ReadFull(f, header); err != nil {
		return 0, 0, false
	}
	if string(header[0:4]) != "DDS " {
		return 0, 0, false
	}
	w := binary.LittleEndian.Uint32(header[12:16])
	h := binary.LittleEndian.Uint32(header[16:20])
	return int(w), int(h), true
}

// relocate copies src to dst (recursively if isDir) and, if
// deleteAfterCopy, removes the original.
func relocate(src, dst string, isDir, deleteAfterCopy bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if isDir {
		if err := copyDir(src, dst); err != nil {
			return err
		}
		if deleteAfterCopy {
			return os.RemoveAll(src)
		}
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	if deleteAfterCopy {
		return os.Remove(src)
	}
	return nil
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
