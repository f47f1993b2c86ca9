package crashgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/classic-scan/classic/internal/model"
)

func TestCheckFlagsMismatchAndMissingKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Buffout4.toml")
	body := `
[Compatibility]
F4EE = false

[Patches]
Achievements = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	recs := []Recommendation{
		{Key: "Compatibility.F4EE", Expected: true, Reason: "needed for body/face mods"},
		{Key: "Patches.Achievements", Expected: true, Reason: "avoid achievement mod conflicts"},
		{Key: "Patches.MemoryManager", Expected: true, Reason: "not present in file"},
	}

	fs := model.NewFindings()
	if err := Check(fs, "crash-test.log", path, "Buffout4", recs); err != nil {
		t.Fatalf("Check: %v", err)
	}

	if fs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (F4EE mismatch + MemoryManager missing)", fs.Len())
	}
	var sawF4EE, sawMemoryManager bool
	for _, f := range fs.All() {
		if strings.Contains(f.Message, "Compatibility.F4EE") {
			sawF4EE = true
		}
		if strings.Contains(f.Message, "Patches.MemoryManager") {
			sawMemoryManager = true
		}
	}
	if !sawF4EE || !sawMemoryManager {
		t.Errorf("missing expected findings: sawF4EE=%v sawMemoryManager=%v", sawF4EE, sawMemoryManager)
	}
}

func TestCheckMissingFileDegradesToSingleFinding(t *testing.T) {
	fs := model.NewFindings()
	err := Check(fs, "crash-test.log", "/nonexistent/Buffout4.toml", "Buffout4",
		[]Recommendation{{Key: "Compatibility.F4EE", Expected: true}})
	if err != nil {
		t.Fatalf("Check should degrade cleanly, got error: %v", err)
	}
	if fs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fs.Len())
	}
	if !strings.Contains(fs.All()[0].Message, "not found") {
		t.Errorf("unexpected message: %q", fs.All()[0].Message)
	}
}

func TestCheckNoMismatchesProducesNoFindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Buffout4.toml")
	if err := os.WriteFile(path, []byte("[Compatibility]\nF4EE = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := model.NewFindings()
	err := Check(fs, "crash-test.log", path, "Buffout4",
		[]Recommendation{{Key: "Compatibility.F4EE", Expected: true}})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if fs.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", fs.Len())
	}
}
