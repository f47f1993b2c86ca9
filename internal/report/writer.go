// Package report implements the Report Writer (§4.9): it renders per-log
// Markdown reports and the combined aggregate run report, places them next
// to their source logs, and optionally relocates "unsolved" logs.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/classic-scan/classic/internal/filescan"
	"github.com/classic-scan/classic/internal/model"
)

// reportSuffix and aggregate/backup path layout (§6 "Outputs on disk").
const (
	reportSuffix       = "-AUTOSCAN.md"
	unsolvedLogsSubdir = "Unsolved Logs"
	aggregateReportDir = "CLASSIC Reports"
	aggregateReportName = "CLASSIC_Report.md"
)

// EmptyLogIssueID and IncompleteLogIssueID are the fixed sentinel issue IDs
// for the structural boundary findings in §8 ("Empty log →...", "Log with
// 0 lines in plugins segment →...").
const (
	EmptyLogIssueID      = "scan/empty-log"
	IncompleteLogIssueID = "scan/incomplete"
)

// EmptyLogFinding is the single finding emitted for an empty or
// inaccessible crash log (§8 "Boundary behaviors").
func EmptyLogFinding(sourceLog string) model.Finding {
	return model.Finding{
		SourceLog:       sourceLog,
		IssueID:         EmptyLogIssueID,
		Title:           "Empty or Inaccessible Crash Log",
		Message:         "Empty or inaccessible crash log file",
		Severity:        model.Critical,
		SourceComponent: "scan",
	}
}

// IncompleteLogFinding is the warning emitted for a crash log the Segment
// Parser flags Incomplete: its plugins segment is empty or it has fewer
// than 20 lines (§8 "Boundary behaviors").
func IncompleteLogFinding(sourceLog string) model.Finding {
	return model.Finding{
		SourceLog:       sourceLog,
		IssueID:         IncompleteLogIssueID,
		Title:           "Incomplete Crash Log",
		Message:         "The PLUGINS segment is empty or the log is shorter than 20 lines; this log may be truncated or from an unsupported crash-reporter version.",
		Severity:        model.Warning,
		SourceComponent: "scan",
	}
}

// Writer renders and places report artifacts (§4.9).
type Writer struct {
	ToolVersion string
}

// NewWriter returns a Writer that stamps toolVersion into every report's
// header block.
func NewWriter(toolVersion string) *Writer {
	return &Writer{ToolVersion: toolVersion}
}

// bucketOrder fixes the §4.9 per-log section sequence. Each entry names the
// SourceComponent (and, for the overloaded "mod_detector" component, the
// IssueID prefix that disambiguates which §4.7 sub-check produced the
// finding) plus the rendered section heading.
var bucketOrder = []struct {
	heading   string
	component string
	idPrefix  string // "" matches any IssueID under component
}{
	{"Crashgen Settings", "crashgen_checker", ""},
	{"Main Error Suspects", "main_error_suspect", ""},
	{"Call Stack Suspects", "call_stack_suspect", ""},
	{"Named Records", "named_record", ""},
	{"Plugin Suspects", "mod_detector", "mod_single:"},
	{"FormID Suspects", "formid_correlator", ""},
	{"Plugin Conflicts", "mod_detector", "mod_conflict:"},
	{"Important Mod Notes", "mod_detector", "mod_important_missing:"},
	{"Plugin Count Warnings", "mod_detector", "plugin_limit:"},
}

// RenderLog renders one log's full Markdown report (§4.9 "Per-log
// rendering"). fcxSections holds precomputed, already-rendered FCX-mode
// blocks (Address Library presence, etc.) that are not modeled as Findings;
// pass nil/empty when FCX Mode is off. timestamp is the analysis timestamp
// string to stamp into the trailing summary.
func (w *Writer) RenderLog(parsed *model.ParsedCrashLog, findings *model.Findings, fcxEnabled bool, fcxSections []string, timestamp string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# CLASSIC Crash Log Report\n\n")
	fmt.Fprintf(&b, "Generated by CLASSIC %s. This report highlights probable causes of the "+
		"crash; treat every finding as a lead; not a certainty, and verify before "+
		"uninstalling a mod.\n\n", w.ToolVersion)
	fmt.Fprintf(&b, "Game version: %s  \nCrash generator: %s\n\n", orUnknown(parsed.GameVersion), orUnknown(parsed.CrashgenNameAndVersion))

	if fcxEnabled && len(fcxSections) > 0 {
		fmt.Fprintf(&b, "## FCX Mode Checks\n\n")
		for _, section := range fcxSections {
			fmt.Fprintf(&b, "%s\n\n", section)
		}
	}

	all := findings.All()
	for _, group := range bucketOrder {
		items := selectBucket(all, group.component, group.idPrefix)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", group.heading)
		for _, f := range items {
			renderFinding(&b, f)
		}
	}

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "Analysis completed %s. %d finding(s) reported.\n", timestamp, len(all))

	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "UNKNOWN"
	}
	return s
}

func selectBucket(all []model.Finding, component, idPrefix string) []model.Finding {
	var out []model.Finding
	for _, f := range all {
		if f.SourceComponent != component {
			continue
		}
		if idPrefix != "" && !strings.HasPrefix(f.IssueID, idPrefix) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func renderFinding(b *strings.Builder, f model.Finding) {
	sev := f.DisplaySeverity
	if sev == "" {
		sev = f.Severity.String()
	}
	fmt.Fprintf(b, "- **[%s] %s**\n", sev, f.Title)
	if f.Message != "" {
		for _, line := range strings.Split(f.Message, "\n") {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	if f.Recommendation != "" {
		fmt.Fprintf(b, "  Recommendation: %s\n", f.Recommendation)
	}
	b.WriteString("\n")
}

// WriteLogReport writes content next to the log, replacing its extension
// with "-AUTOSCAN.md" (crash-1.log → crash-1-AUTOSCAN.md) (§6).
func (w *Writer) WriteLogReport(logPath, content string) (string, error) {
	reportPath := strings.TrimSuffix(logPath, filepath.Ext(logPath)) + reportSuffix
	if err := os.WriteFile(reportPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report for %s: %w", logPath, err)
	}
	return reportPath, nil
}

// MaybeMoveUnsolved copies logPath into "<parent>/Unsolved Logs/<name>" when
// moveEnabled and no finding of severity >= Warning fired (§4.9 "Artifact
// placement"). Returns the destination path when a move happened.
func MaybeMoveUnsolved(logPath string, findings *model.Findings, moveEnabled bool) (moved bool, dest string, err error) {
	if !moveEnabled || findings.MaxSeverity() >= model.Warning {
		return false, "", nil
	}

	dir := filepath.Join(filepath.Dir(logPath), unsolvedLogsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, "", fmt.Errorf("creating %s: %w", dir, err)
	}
	dest = filepath.Join(dir, filepath.Base(logPath))
	if err := copyFile(logPath, dest); err != nil {
		return false, "", fmt.Errorf("moving %s to %s: %w", logPath, dest, err)
	}
	return true, dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// AggregateInput is everything WriteAggregateReport concatenates into the
// combined run report (§4.9 "Aggregate report").
type AggregateInput struct {
	Stats        model.ScanStatistics
	GameSections []filescan.Category
	ModSections  []filescan.Category
	Timestamp    string
}

// WriteAggregateReport writes the combined run report to
// "<reportsRoot>/CLASSIC Reports/CLASSIC_Report.md" (§6).
func (w *Writer) WriteAggregateReport(reportsRoot string, in AggregateInput) (string, error) {
	dir := filepath.Join(reportsRoot, aggregateReportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# CLASSIC Aggregate Report\n\n")
	fmt.Fprintf(&b, "Generated by CLASSIC %s at %s.\n\n", w.ToolVersion, in.Timestamp)

	fmt.Fprintf(&b, "## Scan Statistics\n\n")
	fmt.Fprintf(&b, "| Scanned | Solved | Incomplete | Failed |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n", in.Stats.Scanned, in.Stats.Solved, in.Stats.Incomplete, in.Stats.Failed)

	if len(in.Stats.FailedFileNames) > 0 {
		names := append([]string(nil), in.Stats.FailedFileNames...)
		sort.Strings(names)
		fmt.Fprintf(&b, "Failed files:\n\n")
		for _, name := range names {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	writeCategorySections(&b, "Game Scan", in.GameSections)
	writeCategorySections(&b, "Mods Scan", in.ModSections)

	reportPath := filepath.Join(dir, aggregateReportName)
	if err := os.WriteFile(reportPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", reportPath, err)
	}
	return reportPath, nil
}

func writeCategorySections(b *strings.Builder, title string, categories []filescan.Category) {
	if len(categories) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, cat := range categories {
		fmt.Fprintf(b, "### %s\n\n", cat.Header)
		for _, item := range cat.Items {
			fmt.Fprintf(b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
}
