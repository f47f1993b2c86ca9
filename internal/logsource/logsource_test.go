package logsource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverSortsByPath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"crash-2023-01-02.log", "crash-2023-01-01.log", "other.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := New(dir, "")
	got, err := s.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(got), got)
	}
	if filepath.Base(got[0]) != "crash-2023-01-01.log" || filepath.Base(got[1]) != "crash-2023-01-02.log" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestLinesCachesAfterFirstRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crash-test.log")
	if err := os.WriteFile(path, []byte("a\nb\nc"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, "")
	first, err := s.Lines(path)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	// Mutate the file on disk; the cached read must not change.
	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := s.Lines(path)
	if err != nil {
		t.Fatalf("Lines (cached): %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("cache was not reused: first=%v second=%v", first, second)
	}
}

func TestReformatIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crash-test.log")
	body := "keep this\nSTRIP ME please\nkeep that\n\n\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := Reformat(path, []string{"strip me"})
	if err != nil {
		t.Fatalf("Reformat: %v", err)
	}
	if !changed {
		t.Fatalf("expected first Reformat to report a change")
	}

	firstPass, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err = Reformat(path, []string{"strip me"})
	if err != nil {
		t.Fatalf("Reformat (second pass): %v", err)
	}
	if changed {
		t.Fatalf("expected second Reformat to report no change")
	}

	secondPass, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(firstPass) != string(secondPass) {
		t.Fatalf("Reformat is not idempotent:\nfirst:  %q\nsecond: %q", firstPass, secondPass)
	}
}
