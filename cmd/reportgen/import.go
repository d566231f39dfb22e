package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/database"
	"github.com/nao1215/reportgen/internal/dataset"
	"github.com/nao1215/reportgen/internal/model"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dataset> <items-file>",
		Short: "Store items from a file as a named dataset",
		Long: `Import reads items from a YAML or JSON file and stores them in the
report database under a dataset name. An existing dataset with the same
name is replaced.

Stored datasets can be rendered with "reportgen generate --dataset <name>".`,
		Args: cobra.ExactArgs(2),
		RunE: runImportCmd,
	}

	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the report database")

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)
	name, path := args[0], args[1]

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	items, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceItems(cmd.Context(), name, items); err != nil {
		return err
	}

	logger.Info("dataset imported", "dataset", name, "items", len(items), "db", db.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into dataset %q (total value %s)\n",
		len(items), name, model.FormatValue(model.SumValues(items)))
	return nil
}
