package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFakeExtractor(t *testing.T, dir, script string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-extractor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListParsesOneEntryPerLine(t *testing.T) {
	dir := t.TempDir()
	exe := writeFakeExtractor(t, dir, `echo "textures/foo.dds"
echo "meshes/bar.nif"
`)

	got, err := List(context.Background(), exe, "archive.ba2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "textures/foo.dds" || got[1] != "meshes/bar.nif" {
		t.Fatalf("unexpected entries: %v", got)
	}
}

func TestDumpParsesFixedBlocks(t *testing.T) {
	dir := t.TempDir()
	exe := writeFakeExtractor(t, dir, `cat <<'EOF'
Path: textures/foo.dds
Format: dds
Dimensions: 512x256

Path: textures/bar.png
Format: png
Dimensions: 129x64
EOF
`)

	got, err := Dump(context.Background(), exe, "archive.ba2")
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Path != "textures/foo.dds" || got[0].Extension != "dds" || got[0].Width != 512 || got[0].Height != 256 {
		t.Errorf("entry[0] = %+v", got[0])
	}
	if got[1].Path != "textures/bar.png" || got[1].Width != 129 || got[1].Height != 64 {
		t.Errorf("entry[1] = %+v", got[1])
	}
}

func TestRunFailureReturnsSentinel(t *testing.T) {
	dir := t.TempDir()
	exe := writeFakeExtractor(t, dir, `exit 1
`)

	_, err := List(context.Background(), exe, "archive.ba2")
	if !errors.Is(err, ErrExtractorFailed) {
		t.Fatalf("expected ErrExtractorFailed, got %v", err)
	}
}
