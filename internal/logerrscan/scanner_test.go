package logerrscan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanFlagsMatchingLinesAndRespectsExcludes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Fallout4.log")
	body := "startup ok\n[error] failed to load texture\n[warning] failed to load texture but ignorable\nshutdown ok\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Scan(dir, []string{"failed to load"}, []string{"ignorable"}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if len(entries[0].Lines) != 1 {
		t.Fatalf("expected 1 flagged line, got %v", entries[0].Lines)
	}
}

func TestScanSkipsCrashLogsAndExcludedFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(name, body string) {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("crash-2023-01-01.log", "[error] failed to load texture\n")
	mustWrite("noisy-plugin.log", "[error] failed to load texture\n")
	mustWrite("Fallout4.log", "[error] failed to load texture\n")

	entries, err := Scan(dir, []string{"failed to load"}, nil, []string{"noisy-plugin"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 1 || filepath.Base(entries[0].Path) != "Fallout4.log" {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestDecodeBestEffortHandlesUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	got, err := DecodeBestEffort(data)
	if err != nil {
		t.Fatalf("DecodeBestEffort: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestDecodeBestEffortFallsBackForPlainText(t *testing.T) {
	got, err := DecodeBestEffort([]byte("plain ascii text"))
	if err != nil {
		t.Fatalf("DecodeBestEffort: %v", err)
	}
	if got != "plain ascii text" {
		t.Errorf("got %q", got)
	}
}
