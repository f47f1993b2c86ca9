package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/classic-scan/classic/internal/filescan"
	"github.com/classic-scan/classic/internal/model"
)

func TestRenderLogOrdersSections(t *testing.T) {
	fs := model.NewFindings()
	fs.Add(model.Finding{SourceLog: "a", IssueID: "main_error:x", Title: "Null Memory Access", Severity: model.Critical, DisplaySeverity: "5", SourceComponent: "main_error_suspect"})
	fs.Add(model.Finding{SourceLog: "a", IssueID: "mod_conflict:A:B", Title: "Conflict", Severity: model.Warning, SourceComponent: "mod_detector"})
	fs.Add(model.Finding{SourceLog: "a", IssueID: "mod_single:Foo:fp:false", Title: "Bad Mod", Severity: model.Warning, SourceComponent: "mod_detector"})
	fs.Add(model.Finding{SourceLog: "a", IssueID: "formid_correlator:a", Title: "FormID Suspects", Severity: model.Info, SourceComponent: "formid_correlator"})

	parsed := &model.ParsedCrashLog{GameVersion: "Fallout 4 v1.10.163", CrashgenNameAndVersion: "Buffout 4 v1.28.6"}

	w := NewWriter("v1.0.0")
	out := w.RenderLog(parsed, fs, false, nil, "2026-07-29 00:00:00")

	idxMainError := strings.Index(out, "Main Error Suspects")
	idxPluginSuspects := strings.Index(out, "Plugin Suspects")
	idxFormID := strings.Index(out, "FormID Suspects")
	idxConflicts := strings.Index(out, "Plugin Conflicts")

	if !(idxMainError < idxPluginSuspects && idxPluginSuspects < idxFormID && idxFormID < idxConflicts) {
		t.Fatalf("sections out of order: mainError=%d pluginSuspects=%d formID=%d conflicts=%d", idxMainError, idxPluginSuspects, idxFormID, idxConflicts)
	}
}

func TestMaybeMoveUnsolvedOnlyWhenBelowWarning(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "crash-1.log")
	if err := os.WriteFile(logPath, []byte("log contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	solved := model.NewFindings()
	solved.Add(model.Finding{IssueID: "x", Severity: model.Warning})
	if moved, _, err := MaybeMoveUnsolved(logPath, solved, true); err != nil || moved {
		t.Fatalf("MaybeMoveUnsolved with a Warning finding: moved=%v err=%v, want moved=false", moved, err)
	}

	unsolved := model.NewFindings()
	unsolved.Add(model.Finding{IssueID: "y", Severity: model.Info})
	moved, dest, err := MaybeMoveUnsolved(logPath, unsolved, true)
	if err != nil {
		t.Fatalf("MaybeMoveUnsolved: %v", err)
	}
	if !moved {
		t.Fatalf("expected move for a log with no >= Warning finding")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination %s not created: %v", dest, err)
	}
}

func TestWriteAggregateReportIncludesCategories(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter("v1.0.0")

	stats := model.ScanStatistics{Scanned: 3, Solved: 2, Incomplete: 0, Failed: 1, FailedFileNames: []string{"crash-3.log"}}
	gameSections := []filescan.Category{{Header: "Missing Address Library", Items: []string{"version-1-10-163.bin"}}}

	path, err := w.WriteAggregateReport(dir, AggregateInput{Stats: stats, GameSections: gameSections, Timestamp: "2026-07-29"})
	if err != nil {
		t.Fatalf("WriteAggregateReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	content := string(data)
	if !strings.Contains(content, "Missing Address Library") {
		t.Fatalf("aggregate report missing game-section content: %s", content)
	}
	if !strings.Contains(content, "crash-3.log") {
		t.Fatalf("aggregate report missing failed file name: %s", content)
	}
}
