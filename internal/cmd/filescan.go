package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classic-scan/classic/internal/config"
	"github.com/classic-scan/classic/internal/filescan"
	"github.com/classic-scan/classic/internal/knowledge"
	"github.com/classic-scan/classic/internal/pathutil"
	"github.com/classic-scan/classic/internal/settings"
)

var (
	filescanModsDir     string
	filescanBackupDir   string
	filescanExtractor   string
	filescanGameVersion string
	filescanDeleteAfter bool
)

var filescanCmd = &cobra.Command{
	Use:     "filescan",
	GroupID: GroupScan,
	Short:   "Scan mod-staging and game directories for file-level problems",
	Long: `Classifies loose files and BA2 archives under --mods-dir (wrong texture
formats, misplaced documentation, XSE script copies, previs leftovers,
malformed archives) and, when --game-version is set, checks the managed
game's install directory for a missing Address Library file.`,
	RunE: runFilescan,
}

func init() {
	filescanCmd.Flags().StringVar(&filescanModsDir, "mods-dir", "", "mod-staging directory to scan (required)")
	filescanCmd.Flags().StringVar(&filescanBackupDir, "backup-dir", "CLASSIC Backup/Cleaned Files", "directory documentation/FOMOD files are relocated into")
	filescanCmd.Flags().StringVar(&filescanExtractor, "extractor", "", "path to the BA2 extractor binary (skips the archive scan if empty)")
	filescanCmd.Flags().StringVar(&filescanGameVersion, "game-version", "", "installed game version, e.g. \"1.10.163\" (skips the Address Library check if empty)")
	filescanCmd.Flags().BoolVar(&filescanDeleteAfter, "delete-after-relocate", false, "remove the original file after relocating it")
	_ = filescanCmd.MarkFlagRequired("mods-dir")
	rootCmd.AddCommand(filescanCmd)
}

func runFilescan(cmd *cobra.Command, args []string) error {
	store := config.NewStore(pathutil.ExpandHome(dataDir), logger)
	set := settings.New(store)
	edition := set.ManagedGame()
	if err := store.PreloadImmutable(edition); err != nil {
		return fmt.Errorf("preloading configuration: %w", err)
	}
	kb := knowledge.New(store, edition)

	results := make([]*filescan.Result, 0, 3)

	looseResult, err := filescan.ScanLooseFiles(filescanModsDir, filescanBackupDir, kb.XSEHashedScripts(), filescanDeleteAfter)
	if err != nil {
		return fmt.Errorf("scanning loose files: %w", err)
	}
	results = append(results, looseResult)

	if filescanExtractor != "" {
		archiveResult, err := filescan.ScanArchives(cmd.Context(), filescanModsDir, filescanExtractor)
		if err != nil {
			return fmt.Errorf("scanning archives: %w", err)
		}
		results = append(results, archiveResult)
	}

	if filescanGameVersion != "" {
		gameLocal := settings.NewGameLocal(store, edition)
		addrResult := filescan.NewResult()
		if err := filescan.CheckAddressLibrary(addrResult, gameLocal.GameRootPath(), kb.XSEAcronym(), filescanGameVersion, set.VRMode()); err != nil {
			return fmt.Errorf("checking Address Library: %w", err)
		}
		results = append(results, addrResult)
	}

	printFilescanResults(results)
	return nil
}

func printFilescanResults(results []*filescan.Result) {
	any := false
	for _, r := range results {
		for _, cat := range r.Categories() {
			any = true
			fmt.Printf("## %s\n", cat.Header)
			for _, item := range cat.Items {
				fmt.Printf("- %s\n", item)
			}
			fmt.Println()
		}
	}
	if !any {
		fmt.Println("no issues found")
	}
}
