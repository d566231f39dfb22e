package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/database"
	"github.com/nao1215/reportgen/internal/model"
)

// defaultHistoryLimit is the number of reports listed when --limit is not given.
const defaultHistoryLimit = 20

// errNoDatabase is returned when the report database has not been created yet.
var errNoDatabase = errors.New("no report database found: run generate or import first")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated reports",
		Long: `History lists the reports recorded in the report database, newest first.

Examples:
  # Show the last 20 reports
  reportgen history

  # Show every report
  reportgen history --limit 0

  # Print the text of report 12
  reportgen history --show 12

  # List imported datasets
  reportgen history --datasets`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of reports to list (0 lists all)")
	cmd.Flags().Int64("show", 0,
		"Print the text of the report with this ID")
	cmd.Flags().Bool("datasets", false,
		"List the stored datasets instead of reports")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the report database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	setupLogger(cmd)

	flags := cmd.Flags()
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := flags.GetInt64("show")
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); os.IsNotExist(err) {
		return errNoDatabase
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	listDatasets, err := flags.GetBool("datasets")
	if err != nil {
		return err
	}
	if listDatasets {
		names, err := db.ListDatasets(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	if showID > 0 {
		record, err := db.GetReport(cmd.Context(), showID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), record.Body)
		return nil
	}

	records, err := db.ListReports(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports recorded yet.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderHistory(records))
	return nil
}

// renderHistory formats report records as a table.
func renderHistory(records []database.ReportRecord) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"ID", "Type", "User", "Role", "Source", "Items", "Total", "Size", "Digest", "Created"})
	for _, rec := range records {
		tbl.AppendRow(table.Row{
			rec.ID,
			rec.ReportType,
			rec.UserName,
			rec.Role,
			rec.Dataset,
			fmt.Sprintf("%d/%d", rec.Included, rec.Included+rec.Excluded),
			model.FormatValue(rec.Total),
			humanize.Bytes(uint64(rec.Size)), //nolint:gosec // size is a non-negative length
			shortDigest(rec.Digest),
			humanize.Time(rec.CreatedAt),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d reports", len(records))})

	return tbl.Render()
}

// shortDigest returns the first 12 characters of a digest.
func shortDigest(digest string) string {
	const n = 12
	if len(digest) <= n {
		return digest
	}
	return digest[:n]
}
