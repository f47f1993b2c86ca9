package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/classic-scan/classic/internal/config"
	"github.com/classic-scan/classic/internal/knowledge"
	"github.com/classic-scan/classic/internal/logsource"
	"github.com/classic-scan/classic/internal/model"
	"github.com/classic-scan/classic/internal/report"
	"github.com/classic-scan/classic/internal/scheduler"
)

const fixtureMainYAML = `
Suspects:
  MainError:
    - key: "5 | Null Memory Access"
      needle: "EXCEPTION_ACCESS_VIOLATION"
GameInfo:
  XSEAcronym: "F4SE"
`

func newTestDeps(t *testing.T, dataDir string) Dependencies {
	t.Helper()
	mainPath := filepath.Join(dataDir, "CLASSIC Data/databases/CLASSIC Fallout4.yaml")
	if err := os.MkdirAll(filepath.Dir(mainPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mainPath, []byte(fixtureMainYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store := config.NewStore(dataDir, logger)
	kb := knowledge.New(store, "Fallout4")

	return Dependencies{
		Edition:    "Fallout4",
		XSEAcronym: kb.XSEAcronym(),
		Source:     logsource.New(dataDir, "crash-*.log"),
		KB:         kb,
		Writer:     report.NewWriter("test"),
		Now:        func() time.Time { return time.Unix(0, 0) },
	}
}

func TestRunLogEmptyLogWritesReport(t *testing.T) {
	dir := t.TempDir()
	deps := newTestDeps(t, dir)

	logPath := filepath.Join(dir, "crash-empty.log")
	if err := os.WriteFile(logPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stats := model.NewScanStatistics()
	err := RunLog(context.Background(), logPath, deps, stats)
	if err == nil {
		t.Fatal("expected an error for an empty crash log")
	}

	reportPath := logPath[:len(logPath)-len(".log")] + "-AUTOSCAN.md"
	if _, statErr := os.Stat(reportPath); statErr != nil {
		t.Errorf("expected report at %s: %v", reportPath, statErr)
	}

	// RunLog itself no longer records the failure: scheduler.Run owns
	// AddFailed for any non-nil task error, so a caller driving RunLog
	// directly (as this test does) sees no stats mutation from RunLog alone.
	if snap := stats.Snapshot(); snap.Failed != 0 {
		t.Errorf("Failed = %d, want 0 (RunLog alone must not record it)", snap.Failed)
	}
}

func TestRunBatchDoesNotDoubleCountEmptyLogFailures(t *testing.T) {
	dir := t.TempDir()
	deps := newTestDeps(t, dir)

	logPath := filepath.Join(dir, "crash-empty.log")
	if err := os.WriteFile(logPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stats := model.NewScanStatistics()
	task := func(ctx context.Context, path string) error {
		return RunLog(ctx, path, deps, stats)
	}
	if err := scheduler.Run(context.Background(), []string{logPath}, stats, nil, task); err != nil {
		t.Fatalf("scheduler.Run: %v", err)
	}

	if snap := stats.Snapshot(); snap.Failed != 1 {
		t.Errorf("Failed = %d, want exactly 1 (got %+v)", snap.Failed, snap)
	}
}

func TestRunLogSolvedCrashWritesSolvedReport(t *testing.T) {
	dir := t.TempDir()
	deps := newTestDeps(t, dir)

	body := `Buffout 4 v1.28.6
Fallout 4 v1.10.163
Unhandled exception "EXCEPTION_ACCESS_VIOLATION" at 0x7FF6A1B2C3D4

[Compatibility]
Loaded plugins are compatible

SYSTEM SPECS:
	OS: Windows 10

PROBABLE CALL STACK:
	[0] 0x7FF6A1B2C3D4 Fallout4.exe+1B2C3D4

MODULES:
	Fallout4.exe

F4SE PLUGINS:
	buffout4.dll v1.28.6

PLUGINS:
	[00]     Fallout4.esm
`
	logPath := filepath.Join(dir, "crash-test.log")
	if err := os.WriteFile(logPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	stats := model.NewScanStatistics()
	if err := RunLog(context.Background(), logPath, deps, stats); err != nil {
		t.Fatalf("RunLog: %v", err)
	}

	reportPath := logPath[:len(logPath)-len(".log")] + "-AUTOSCAN.md"
	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("expected report at %s: %v", reportPath, err)
	}
	if len(content) == 0 {
		t.Error("expected non-empty report content")
	}

	snap := stats.Snapshot()
	if snap.Solved != 1 {
		t.Errorf("Solved = %d, want 1 (got snapshot %+v)", snap.Solved, snap)
	}
}

func TestRunLogRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	deps := newTestDeps(t, dir)

	logPath := filepath.Join(dir, "crash-cancelled.log")
	if err := os.WriteFile(logPath, []byte("Buffout 4 v1.28.6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := model.NewScanStatistics()
	err := RunLog(ctx, logPath, deps, stats)
	if err != context.Canceled {
		t.Errorf("RunLog error = %v, want context.Canceled", err)
	}
}
