// Package pipeline wires the Crash Log Scanning Pipeline's per-log flow
// (§2 "Data/control flow": Source → Segment Parser → {Rule Engine, Mod
// Detector, FormID Correlator} → Report Writer) into a single
// scheduler.Task, and the batch-level entry point that fans it out.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/classic-scan/classic/internal/crashgen"
	"github.com/classic-scan/classic/internal/crashlog"
	"github.com/classic-scan/classic/internal/filescan"
	"github.com/classic-scan/classic/internal/formidcorr"
	"github.com/classic-scan/classic/internal/knowledge"
	"github.com/classic-scan/classic/internal/logsource"
	"github.com/classic-scan/classic/internal/model"
	"github.com/classic-scan/classic/internal/moddetect"
	"github.com/classic-scan/classic/internal/report"
	"github.com/classic-scan/classic/internal/rules"
	"github.com/classic-scan/classic/internal/scheduler"
	"github.com/classic-scan/classic/internal/settings"
)

// Clock returns the current time; overridable in tests so report timestamps
// are deterministic without touching the real wall clock.
type Clock func() time.Time

// Dependencies bundles the read-only collaborators every per-log task
// shares (§5 "per-log tasks are independent and pure with respect to
// shared state").
type Dependencies struct {
	Edition    string
	XSEAcronym string

	Source   *logsource.Source
	KB       *knowledge.KnowledgeBase
	Settings *settings.Settings
	GameRoot string // managed game's install directory, for FCX-mode checks

	FormIDIndex formidcorr.Resolver // nil when the FormID Index isn't loaded
	Writer      *report.Writer

	Now Clock
}

func (d Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// RunLog executes one log end to end: parse → detect → write (§4, §5
// "Within one log, the per-log pipeline runs strictly sequentially").
// RunBatch wraps it in a closure matching the scheduler.Task signature.
func RunLog(ctx context.Context, path string, deps Dependencies, stats *model.ScanStatistics) error {
	lines, err := deps.Source.Lines(path)
	if err != nil || len(lines) == 0 {
		findings := model.NewFindings()
		findings.Add(report.EmptyLogFinding(path))
		content := deps.Writer.RenderLog(&model.ParsedCrashLog{}, findings, false, nil, deps.now().Format(time.RFC3339))
		_, _ = deps.Writer.WriteLogReport(path, content)
		// stats.AddFailed is the batch scheduler's job (it records a
		// failure for any non-nil task error); recording it here too would
		// double-count this path when RunLog runs under scheduler.Run.
		if err != nil {
			return err
		}
		return fmt.Errorf("pipeline: %s is empty", path)
	}

	if err := checkDone(ctx); err != nil {
		return err
	}

	parsed := crashlog.Parse(path, lines, deps.XSEAcronym)
	findings := model.NewFindings()
	if parsed.Incomplete {
		findings.Add(report.IncompleteLogFinding(path))
		stats.AddIncomplete()
	}

	if err := checkDone(ctx); err != nil {
		return err
	}

	fcxEnabled := deps.Settings != nil && deps.Settings.FCXMode()
	var fcxSections []string
	if fcxEnabled {
		fcxSections = runFCXChecks(findings, path, parsed, deps)
	}

	if err := checkDone(ctx); err != nil {
		return err
	}

	rules.Evaluate(findings, path, parsed, deps.KB)

	if err := checkDone(ctx); err != nil {
		return err
	}

	runModDetector(findings, path, parsed, deps)

	if err := checkDone(ctx); err != nil {
		return err
	}

	showFormIDValues := deps.Settings != nil && deps.Settings.ShowFormIDValues()
	formidcorr.Correlate(findings, path, parsed, deps.FormIDIndex, showFormIDValues)

	if err := checkDone(ctx); err != nil {
		return err
	}

	content := deps.Writer.RenderLog(parsed, findings, fcxEnabled, fcxSections, deps.now().Format(time.RFC3339))
	if _, err := deps.Writer.WriteLogReport(path, content); err != nil {
		return err
	}

	moveEnabled := deps.Settings != nil && deps.Settings.MoveUnsolvedLogs()
	if _, _, err := report.MaybeMoveUnsolved(path, findings, moveEnabled); err != nil {
		return err
	}

	if findings.MaxSeverity() >= model.Warning {
		stats.AddSolved()
	}
	return nil
}

func checkDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// runFCXChecks implements the §4.9 expansion's FCX-mode sections: the
// crashgen-settings mismatch list (§4.13), added to findings as
// dedup-tracked Findings, and the Address Library presence check (§4.14),
// run for this log's GameVersion and returned as pre-rendered lines that
// the report shows verbatim rather than as Findings.
func runFCXChecks(findings *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, deps Dependencies) []string {
	var sections []string

	for _, cfg := range []struct{ kind, file string }{
		{"Buffout4", "Buffout4.toml"},
		{"EngineFixes", "EngineFixes.toml"},
	} {
		tomlPath := filepath.Join(deps.GameRoot, "Data", deps.XSEAcronym, "Plugins", cfg.file)
		recs := toCrashgenRecommendations(deps.KB.CrashgenRecommendations(cfg.kind))
		_ = crashgen.Check(findings, sourceLog, tomlPath, cfg.kind, recs)
	}

	vrMode := deps.Settings != nil && deps.Settings.VRMode()
	result := filescan.NewResult()
	if err := filescan.CheckAddressLibrary(result, deps.GameRoot, deps.XSEAcronym, parsed.GameVersion, vrMode); err == nil {
		for _, cat := range result.Categories() {
			for _, item := range cat.Items {
				sections = append(sections, fmt.Sprintf("**%s**: %s", cat.Header, item))
			}
		}
	}
	return sections
}

func toCrashgenRecommendations(recs []knowledge.CrashgenRecommendation) []crashgen.Recommendation {
	out := make([]crashgen.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = crashgen.Recommendation{Key: r.Key, Expected: r.Expected, Reason: r.Reason}
	}
	return out
}

func runModDetector(findings *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, deps Dependencies) {
	plugins := parsed.LoadedPlugins

	moddetect.SinglePluginMatches(findings, sourceLog, plugins, deps.KB.ModsSingle())
	moddetect.PairConflicts(findings, sourceLog, plugins, deps.KB.ModsConflict())

	notes := moddetect.SelectImportantNotes(plugins, deps.KB.ModsImportantCore(), deps.KB.ModsImportantFOLON())
	gpuVendor := moddetect.DetectGPUVendor(parsed.Segments.Get(model.SegmentSystemSpecs))
	moddetect.ImportantPluginPresence(findings, sourceLog, plugins, notes, gpuVendor)

	moddetect.PluginLimits(findings, sourceLog, deps.Edition, plugins)
}

// RunBatch discovers, reformats, and scans every crash log under the
// Source's configured directory, writing an aggregate report once all
// per-log writes complete (§4.10, §4.9 "Aggregate report").
func RunBatch(ctx context.Context, deps Dependencies, reportsRoot string, sink scheduler.ProgressSink) (*model.ScanStatistics, error) {
	paths, err := deps.Source.Discover()
	if err != nil {
		return nil, fmt.Errorf("discovering crash logs: %w", err)
	}

	deps.Source.ReformatAll(paths, deps.KB.ExcludeLogRecords())

	stats := model.NewScanStatistics()
	task := func(taskCtx context.Context, path string) error {
		return RunLog(taskCtx, path, deps, stats)
	}
	if err := scheduler.Run(ctx, paths, stats, sink, task); err != nil {
		return stats, err
	}

	if _, err := deps.Writer.WriteAggregateReport(reportsRoot, report.AggregateInput{
		Stats:     stats.Snapshot(),
		Timestamp: deps.now().Format(time.RFC3339),
	}); err != nil {
		return stats, err
	}

	return stats, nil
}
