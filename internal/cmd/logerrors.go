package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classic-scan/classic/internal/config"
	"github.com/classic-scan/classic/internal/knowledge"
	"github.com/classic-scan/classic/internal/logerrscan"
	"github.com/classic-scan/classic/internal/pathutil"
)

var logerrorsRoot string

var logerrorsCmd = &cobra.Command{
	Use:     "logerrors",
	GroupID: GroupDiag,
	Short:   "Scan non-crash .log files under a directory for known error substrings",
	Long: `Walks --root for *.log files (skipping crash-*.log and any path matched
by the Main catalog's LogErrors.ExcludeFiles list), decodes each with
best-effort BOM/Windows-1252 detection, and prints every line that matches
the catch list but none of the exclude list.`,
	RunE: runLogerrors,
}

func init() {
	logerrorsCmd.Flags().StringVar(&logerrorsRoot, "root", "", "directory to search for .log files (required)")
	_ = logerrorsCmd.MarkFlagRequired("root")
	rootCmd.AddCommand(logerrorsCmd)
}

func runLogerrors(cmd *cobra.Command, args []string) error {
	store := config.NewStore(pathutil.ExpandHome(dataDir), logger)
	if err := store.PreloadImmutable(); err != nil {
		return fmt.Errorf("preloading configuration: %w", err)
	}
	kb := knowledge.New(store, "")

	entries, err := logerrscan.Scan(logerrorsRoot, kb.CatchLogErrors(), kb.ExcludeLogErrors(), kb.ExcludeLogFiles())
	if err != nil {
		return fmt.Errorf("scanning logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("no flagged lines found")
		return nil
	}
	for _, e := range entries {
		fmt.Println(e.Path)
		for _, line := range e.Lines {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}
