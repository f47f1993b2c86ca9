package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestSetThenGetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, testLogger())

	if _, ok := Get[string](s, s.SettingsRef(), "Managed Game"); ok {
		t.Fatalf("expected no value before Set")
	}

	if _, ok := Set[string](s, s.SettingsRef(), "Managed Game", "Fallout4"); !ok {
		t.Fatalf("Set failed")
	}

	got, ok := Get[string](s, s.SettingsRef(), "Managed Game")
	if !ok || got != "Fallout4" {
		t.Fatalf("Get after Set = (%q, %v), want (%q, true)", got, ok, "Fallout4")
	}
}

func TestSetRefusesImmutableDocument(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, testLogger())

	if _, ok := Set[string](s, s.MainRef(), "Foo.Bar", "baz"); ok {
		t.Fatalf("expected Set on immutable Main document to fail")
	}
}

func TestMtimeInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsPath)
	if err := os.WriteFile(path, []byte("Managed Game: Fallout4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir, testLogger())
	got, ok := Get[string](s, s.SettingsRef(), "Managed Game")
	if !ok || got != "Fallout4" {
		t.Fatalf("initial Get = (%q, %v)", got, ok)
	}

	// Ensure the new mtime is observably later, then rewrite the file.
	future := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(path, []byte("Managed Game: SkyrimSE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	got, ok = Get[string](s, s.SettingsRef(), "Managed Game")
	if !ok || got != "SkyrimSE" {
		t.Fatalf("Get after mtime change = (%q, %v), want (%q, true)", got, ok, "SkyrimSE")
	}
}

func TestGetMissingKeyReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, testLogger())

	if v, ok := Get[bool](s, s.SettingsRef(), "VR Mode"); ok || v {
		t.Fatalf("expected zero value/false for missing key, got (%v, %v)", v, ok)
	}
}

func TestPreloadImmutableLoadsMainAndGameCatalogs(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, MainCatalogPath)
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mainPath, []byte("Version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir, testLogger())
	if err := s.PreloadImmutable("Fallout4"); err != nil {
		t.Fatalf("PreloadImmutable: %v", err)
	}

	got, ok := Get[int](s, s.MainRef(), "Version")
	if !ok || got != 1 {
		t.Fatalf("Get after preload = (%v, %v)", got, ok)
	}
}
