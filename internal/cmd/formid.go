package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classic-scan/classic/internal/formid"
)

var formidCmd = &cobra.Command{
	Use:     "formid",
	GroupID: GroupData,
	Short:   "Manage the FormID Index",
}

var formidEditions []string

var formidCreateCmd = &cobra.Command{
	Use:   "create <index-path>",
	Short: "Create a new FormID Index with one table per game edition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := formid.Create(args[0], formidEditions); err != nil {
			return fmt.Errorf("creating FormID Index: %w", err)
		}
		fmt.Printf("created FormID Index at %s (%d editions)\n", args[0], len(formidEditions))
		return nil
	},
}

var formidIngestEdition string

var formidIngestCmd = &cobra.Command{
	Use:   "ingest <index-path> <csv-path>",
	Short: "Ingest one CSV file into an edition's FormID Index table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := formid.Open(args[0], formidIngestEdition, false)
		if err != nil {
			return fmt.Errorf("opening FormID Index: %w", err)
		}
		defer idx.Close()

		n, err := idx.Ingest(args[1])
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", args[1], err)
		}
		fmt.Printf("ingested %d rows from %s into %s edition\n", n, args[1], formidIngestEdition)
		return nil
	},
}

func init() {
	formidCreateCmd.Flags().StringSliceVar(&formidEditions, "editions", []string{"Fallout4", "Skyrim"}, "game editions to create tables for")
	formidIngestCmd.Flags().StringVar(&formidIngestEdition, "edition", "Fallout4", "game edition table to ingest into")

	formidCmd.AddCommand(formidCreateCmd, formidIngestCmd)
	rootCmd.AddCommand(formidCmd)
}
