// Package cmd wires CLASSIC's cobra-based CLI (§1 "a cobra-based CLI thin
// enough to satisfy 'CLI argument parsing... is out of scope' as a design
// concern while still being a real, runnable entry point"). Every file in
// this package defines flags and calls into internal/*; none contains
// scanning business logic of its own.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Command groups, mirroring the teacher's GroupID convention for grouped
// help output (see internal/cmd/doctor.go's GroupDiag in the teacher tree).
const (
	GroupScan = "scan"
	GroupData = "data"
	GroupDiag = "diag"
)

var (
	dataDir  string
	logLevel string

	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "classic",
	Short: "Scan Bethesda game crash logs and mod installations for likely culprits",
	Long: `CLASSIC analyzes Fallout 4 and Skyrim crash logs produced by Buffout 4,
Crash Logger, and similar crash-reporter plugins, cross-references them
against a curated knowledge base of known-bad mods and call-stack
signatures, and writes a human-readable Markdown report next to each log.

It also inspects mod-staging and game install directories for common
file-level problems: wrong texture formats, misplaced loose files,
malformed BA2 archives, and a missing Address Library.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupScan, Title: "Scanning commands:"},
		&cobra.Group{ID: GroupData, Title: "Data management commands:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostic commands:"},
	)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory containing \"CLASSIC Data/\", \"CLASSIC Settings.yaml\", etc.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
