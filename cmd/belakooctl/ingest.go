package main

import (
	"fmt"

	"belakoo-backend-go/internal/ingest"
	"belakoo-backend-go/internal/sheets"

	"github.com/spf13/cobra"
)

var (
	ingestDir           string
	ingestCampus        string
	ingestSpreadsheetID string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import lesson sheets",
	Long: `Import lessons from CSV files or a Google spreadsheet and print the
import report as JSON. Sheets that fail are listed in the report; the
command only fails when the campus or the source is unavailable.`,
}

var ingestCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import every .csv file of a directory",
	Long: `Examples:
  belakooctl ingest csv --dir content/term1 --campus c1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := firstNonEmpty(ingestDir, cfg.ContentDir)
		return runImport(cmd, sheets.DirSource{Dir: dir})
	},
}

var ingestSheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Import every worksheet of a Google spreadsheet",
	Long: `Credentials come from GOOGLE_APPLICATION_CREDENTIALS_JSON or
GOOGLE_APPLICATION_CREDENTIALS.

Examples:
  belakooctl ingest sheets --id 1AbC... --campus c1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := sheets.NewService(cmd.Context(), cfg.GoogleCredentials)
		if err != nil {
			return err
		}
		return runImport(cmd, sheets.GoogleSource{Service: svc, SpreadsheetID: ingestSpreadsheetID})
	},
}

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Inspect Google spreadsheets",
}

var sheetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List worksheet names of a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := sheets.NewService(cmd.Context(), cfg.GoogleCredentials)
		if err != nil {
			return err
		}
		names, err := sheets.GoogleSource{Service: svc, SpreadsheetID: ingestSpreadsheetID}.ListSheetNames(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), names)
	},
}

func runImport(cmd *cobra.Command, src ingest.Source) error {
	st, closeFn, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	campus := firstNonEmpty(ingestCampus, cfg.DefaultCampusCode)
	report, err := ingest.NewImporter(st, log).Run(cmd.Context(), src, campus)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), report)
}

func init() {
	ingestCSVCmd.Flags().StringVar(&ingestDir, "dir", "", "Directory holding the CSV files (default CONTENT_DIR)")
	ingestCmd.PersistentFlags().StringVar(&ingestCampus, "campus", "", "Campus code (default DEFAULT_CAMPUS_CODE)")
	ingestSheetsCmd.Flags().StringVar(&ingestSpreadsheetID, "id", "", "Spreadsheet id")
	_ = ingestSheetsCmd.MarkFlagRequired("id")
	sheetsListCmd.Flags().StringVar(&ingestSpreadsheetID, "id", "", "Spreadsheet id")
	_ = sheetsListCmd.MarkFlagRequired("id")

	ingestCmd.AddCommand(ingestCSVCmd)
	ingestCmd.AddCommand(ingestSheetsCmd)
	sheetsCmd.AddCommand(sheetsListCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(sheetsCmd)
}
