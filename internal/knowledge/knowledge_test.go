package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/classic-scan/classic/internal/config"
)

const fixtureYAML = `
Suspects:
  MainError:
    - key: "5 | Null Memory Access"
      needle: "EXCEPTION_ACCESS_VIOLATION"
  CallStack:
    - key: "4 | FooCrash"
      signals:
        - "NOT|ExcludedSymbol"
        - "2|BarFrame"
Mods:
  Conflict:
    - plugin_a: "PluginA.esp"
      plugin_b: "PluginB.esp"
      title: "Known conflict"
      message: "These two mods conflict."
      severity: 4
  ImportantCore:
    - plugin: "HighFPSPhysicsFix.dll"
      title: "High FPS Physics Fix missing"
      message: "Install it."
      severity: 3
      gpu_rival: "amd"
GameInfo:
  XSEAcronym: "F4SE"
`

func writeFixture(t *testing.T) *config.Store {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "CLASSIC Data/databases/CLASSIC Fallout4.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return config.NewStore(dir, logger)
}

func TestSuspectsMainError(t *testing.T) {
	kb := New(writeFixture(t), "Fallout4")
	suspects := kb.SuspectsMainError()
	if len(suspects) != 1 {
		t.Fatalf("got %d suspects, want 1", len(suspects))
	}
	if suspects[0].Severity != 5 || suspects[0].DisplayName != "Null Memory Access" {
		t.Fatalf("unexpected suspect: %+v", suspects[0])
	}
	if suspects[0].Needle != "EXCEPTION_ACCESS_VIOLATION" {
		t.Fatalf("unexpected needle: %q", suspects[0].Needle)
	}
}

func TestSuspectsCallStackSignalParsing(t *testing.T) {
	kb := New(writeFixture(t), "Fallout4")
	programs := kb.SuspectsCallStack()
	if len(programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(programs))
	}
	p := programs[0]
	if len(p.Signals) != 2 {
		t.Fatalf("got %d signals, want 2", len(p.Signals))
	}
	if p.Signals[0].Pattern != "ExcludedSymbol" {
		t.Fatalf("unexpected signal[0]: %+v", p.Signals[0])
	}
	if p.Signals[1].Count != 2 || p.Signals[1].Pattern != "BarFrame" {
		t.Fatalf("unexpected signal[1]: %+v", p.Signals[1])
	}
}

func TestModsConflictAndImportantCore(t *testing.T) {
	kb := New(writeFixture(t), "Fallout4")

	conflicts := kb.ModsConflict()
	if len(conflicts) != 1 || conflicts[0].PluginA != "PluginA.esp" {
		t.Fatalf("unexpected conflicts: %+v", conflicts)
	}

	important := kb.ModsImportantCore()
	if len(important) != 1 || important[0].GPURival != "amd" {
		t.Fatalf("unexpected important notes: %+v", important)
	}

	if kb.XSEAcronym() != "F4SE" {
		t.Fatalf("unexpected XSE acronym: %q", kb.XSEAcronym())
	}
}
