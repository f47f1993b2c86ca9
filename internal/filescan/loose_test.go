package filescan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func ddsHeader(width, height uint32) []byte {
	h := make([]byte, 20)
	copy(h[0:4], "DDS ")
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[16] = byte(height)
	h[17] = byte(height >> 8)
	return h
}

func TestScanLooseFilesClassifiesAndRelocatesDocumentation(t *testing.T) {
	root := t.TempDir()
	backup := t.TempDir()
	writeFile(t, filepath.Join(root, "README.txt"), []byte("hello"))

	result, err := ScanLooseFiles(root, backup, nil, true)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	if len(result.Documentation.sorted()) != 1 {
		t.Fatalf("expected 1 documentation file, got %v", result.Documentation.sorted())
	}
	if _, err := os.Stat(filepath.Join(backup, "README.txt")); err != nil {
		t.Errorf("expected README.txt relocated to backup dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "README.txt")); !os.IsNotExist(err) {
		t.Errorf("expected original README.txt removed after relocate")
	}
}

func TestScanLooseFilesFlagsOddDDSDimensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "texture.dds"), ddsHeader(513, 256))

	result, err := ScanLooseFiles(root, filepath.Join(root, "backup"), nil, false)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	if len(result.WrongDDSDimensions.sorted()) != 1 {
		t.Fatalf("expected odd-dimension texture flagged, got %v", result.WrongDDSDimensions.sorted())
	}
}

func TestScanLooseFilesIgnoresEvenDDSDimensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "texture.dds"), ddsHeader(512, 256))

	result, err := ScanLooseFiles(root, filepath.Join(root, "backup"), nil, false)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	if len(result.WrongDDSDimensions.sorted()) != 0 {
		t.Fatalf("expected no flagged textures, got %v", result.WrongDDSDimensions.sorted())
	}
}

func TestScanLooseFilesFlagsTextureOutsideBodySlide(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "textures", "thing.tga"), []byte("x"))
	writeFile(t, filepath.Join(root, "BodySlide", "thing.tga"), []byte("x"))

	result, err := ScanLooseFiles(root, filepath.Join(root, "backup"), nil, false)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	got := result.WrongTextureFormat.sorted()
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 flagged texture, got %v", got)
	}
}

func TestScanLooseFilesFlagsXSEScriptCopyOutsideWorkshopFramework(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Scripts", "f4se_loader.pex"), []byte("x"))
	writeFile(t, filepath.Join(root, "Scripts", "workshop framework", "f4se_loader.pex"), []byte("x"))

	result, err := ScanLooseFiles(root, filepath.Join(root, "backup"), []string{"f4se_loader.pex"}, false)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	got := result.XSEScriptCopies.sorted()
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 flagged script copy, got %v", got)
	}
}

func TestScanLooseFilesFlagsPrevisFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foo.uvd"), []byte("x"))
	writeFile(t, filepath.Join(root, "bar_oc.nif"), []byte("x"))

	result, err := ScanLooseFiles(root, filepath.Join(root, "backup"), nil, false)
	if err != nil {
		t.Fatalf("ScanLooseFiles: %v", err)
	}
	if len(result.PrevisLooseFiles.sorted()) != 2 {
		t.Fatalf("expected 2 previs files flagged, got %v", result.PrevisLooseFiles.sorted())
	}
}
