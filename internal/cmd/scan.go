package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classic-scan/classic/internal/config"
	"github.com/classic-scan/classic/internal/formid"
	"github.com/classic-scan/classic/internal/knowledge"
	"github.com/classic-scan/classic/internal/logsource"
	"github.com/classic-scan/classic/internal/model"
	"github.com/classic-scan/classic/internal/pathutil"
	"github.com/classic-scan/classic/internal/pipeline"
	"github.com/classic-scan/classic/internal/report"
	"github.com/classic-scan/classic/internal/settings"
	"github.com/classic-scan/classic/internal/style"
)

const toolVersion = "1.0.0"

var (
	scanLogsDir     string
	scanGlob        string
	scanFormIDIndex string
)

var scanCmd = &cobra.Command{
	Use:     "scan",
	GroupID: GroupScan,
	Short:   "Scan crash logs and write per-log and aggregate reports",
	Long: `Discovers crash-*.log files under --logs-dir, parses each one's six fixed
segments, runs the Rule Engine, Mod Detector, and FormID Correlator against
it, and writes a "<log>-AUTOSCAN.md" report next to the log plus a combined
"CLASSIC Reports/CLASSIC_Report.md" once the whole batch completes.

The managed game, FCX Mode, Show FormID Values, and Move Unsolved Logs
settings all come from "CLASSIC Settings.yaml" under --data-dir, not CLI
flags — they're meant to persist between runs.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanLogsDir, "logs-dir", ".", "directory to search for crash-*.log files")
	scanCmd.Flags().StringVar(&scanGlob, "glob", "crash-*.log", "glob pattern for crash log files")
	scanCmd.Flags().StringVar(&scanFormIDIndex, "formid-index", "", "path to a FormID Index SQLite file (optional)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	store := config.NewStore(pathutil.ExpandHome(dataDir), logger)
	set := settings.New(store)
	edition := set.ManagedGame()

	if err := store.PreloadImmutable(edition); err != nil {
		return fmt.Errorf("preloading configuration: %w", err)
	}

	kb := knowledge.New(store, edition)
	gameLocal := settings.NewGameLocal(store, edition)

	source := logsource.New(scanLogsDir, scanGlob)
	defer source.Dispose()

	deps := pipeline.Dependencies{
		Edition:    edition,
		XSEAcronym: kb.XSEAcronym(),
		Source:     source,
		KB:         kb,
		Settings:   set,
		GameRoot:   gameLocal.GameRootPath(),
		Writer:     report.NewWriter(toolVersion),
	}

	if scanFormIDIndex != "" {
		idx, err := formid.Open(scanFormIDIndex, edition, true)
		if err != nil {
			return fmt.Errorf("opening FormID Index: %w", err)
		}
		defer idx.Close()
		deps.FormIDIndex = idx
	}

	stats, err := pipeline.RunBatch(cmd.Context(), deps, scanLogsDir, newBarSink())
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printScanSummary(stats.Snapshot())
	return nil
}

func printScanSummary(stats model.ScanStatistics) {
	t := style.NewTable(
		style.Column{Name: "Scanned", Width: 8, Align: style.AlignRight},
		style.Column{Name: "Solved", Width: 8, Align: style.AlignRight},
		style.Column{Name: "Incomplete", Width: 10, Align: style.AlignRight},
		style.Column{Name: "Failed", Width: 8, Align: style.AlignRight},
	)
	t.AddRow(
		fmt.Sprintf("%d", stats.Scanned),
		fmt.Sprintf("%d", stats.Solved),
		fmt.Sprintf("%d", stats.Incomplete),
		fmt.Sprintf("%d", stats.Failed),
	)
	fmt.Print(t.Render())

	if len(stats.FailedFileNames) > 0 {
		fmt.Println(style.Dim.Render("  failed:"))
		for _, name := range stats.FailedFileNames {
			fmt.Printf("    %s\n", name)
		}
	}
}
