package filescan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func ba2Header(kind string) []byte {
	h := make([]byte, 12)
	copy(h[0:4], "BTDX")
	copy(h[8:12], kind)
	return h
}

func TestScanArchivesFlagsWrongMagic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.ba2"), []byte("not a real archive header!!"))

	result, err := ScanArchives(context.Background(), root, "/bin/true")
	if err != nil {
		t.Fatalf("ScanArchives: %v", err)
	}
	if len(result.BA2WrongFormat.sorted()) != 1 {
		t.Fatalf("expected 1 wrong-format archive, got %v", result.BA2WrongFormat.sorted())
	}
}

func TestScanArchivesSkipsPrpMain(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "prp - main.ba2"), []byte("garbage"))

	result, err := ScanArchives(context.Background(), root, "/bin/true")
	if err != nil {
		t.Fatalf("ScanArchives: %v", err)
	}
	if len(result.BA2WrongFormat.sorted()) != 0 {
		t.Fatalf("expected prp - main.ba2 to be skipped entirely, got %v", result.BA2WrongFormat.sorted())
	}
}

func TestReadBA2KindAcceptsKnownMagics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.ba2")
	if err := os.WriteFile(path, ba2Header("GNRL"), 0o644); err != nil {
		t.Fatal(err)
	}
	kind, ok := readBA2Kind(path)
	if !ok || kind != "GNRL" {
		t.Fatalf("readBA2Kind = %q, %v", kind, ok)
	}
}
