package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoutlens/scoutlens/internal/db"
	"github.com/scoutlens/scoutlens/internal/export"
	"github.com/scoutlens/scoutlens/internal/report"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <report-id>",
	Short: "Export a stored report to Markdown or HTML",
	Long: `Exports a previously generated report from the local database.
The output format is chosen by the file extension (.md or .html); without
--output the Markdown is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		rec, err := report.NewStore(database).Get(cmd.Context(), args[0])
		if errors.Is(err, report.ErrNotFound) {
			return fmt.Errorf("report %q not found", args[0])
		}
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Print(export.Markdown(rec.Report))
			return nil
		}
		if err := export.WriteFile(rec.Report, exportOutput); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (.md or .html)")
	rootCmd.AddCommand(exportCmd)
}
