package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/database"
	"github.com/nao1215/reportgen/internal/dataset"
	"github.com/nao1215/reportgen/internal/model"
	"github.com/nao1215/reportgen/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [items-file]",
		Short: "Generate reports for a user",
		Long: `Generate renders line items into one or more reports for a user.

Items come from a YAML or JSON file given as argument, or from a dataset
previously stored with "reportgen import". The user's role decides which
items are shown:
- ADMIN sees every item; items above 1000 are highlighted as priority
- USER sees only items valued at 500 or less

Examples:
  # CSV report for an administrator
  reportgen generate items.yaml --user Alice --role admin

  # HTML and Markdown reports written to a directory
  reportgen generate items.yaml -u Bob -f html -f markdown -o reports

  # Report from a stored dataset, with escaping of item values
  reportgen generate --dataset office -u Alice -r admin --escape`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerateCmd,
	}

	// Report selection flags
	cmd.Flags().StringSliceP("format", "f", []string{string(config.DefaultReportType)},
		"Report format: CSV, HTML or MARKDOWN (repeatable)")
	cmd.Flags().StringP("user", "u", "",
		"Name of the user the report is generated for")
	cmd.Flags().StringP("role", "r", "",
		"Role of the user: ADMIN or USER (default: from config file, else USER)")
	cmd.Flags().BoolP("escape", "e", false,
		"Escape separators and markup inside item values")

	// Item source flags
	cmd.Flags().StringP("dataset", "d", "",
		"Read items from a dataset stored in the database")

	// Output flags
	cmd.Flags().StringP("output-dir", "o", "",
		"Write one file per report to this directory instead of stdout")
	cmd.Flags().String("separator", "\n",
		"Text printed between reports written to stdout")
	cmd.Flags().Bool("stdout", false,
		"Also print reports to stdout when --output-dir is set")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of reports rendered concurrently")

	// Configuration and storage flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportgen in current or home directory)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the report database")
	cmd.Flags().Bool("no-save", false,
		"Do not record generated reports in the database")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildGenerateConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runGenerate(ctx, cmd, cfg, logger)
}

// buildGenerateConfig creates a Config from the config file and the
// command flags. Flags that were set explicitly win over the file.
func buildGenerateConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.File, err = loadConfigFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	applyFileDefaults(cfg)

	if flags.Changed("format") {
		names, err := flags.GetStringSlice("format")
		if err != nil {
			return nil, err
		}
		if cfg.Formats, err = parseFormats(names); err != nil {
			return nil, err
		}
	}

	if flags.Changed("user") {
		if cfg.UserName, err = flags.GetString("user"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("escape") {
		if cfg.Escape, err = flags.GetBool("escape"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.Tee, err = flags.GetBool("stdout"); err != nil {
		return nil, err
	}
	if cfg.Dataset, err = flags.GetString("dataset"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}

	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	// The role comes from the flag, then the per-user entry of the config
	// file, then the file defaults.
	userConfig := cfg.File.GetUser(cfg.UserName)
	roleName := userConfig.Role
	if flags.Changed("role") {
		if roleName, err = flags.GetString("role"); err != nil {
			return nil, err
		}
	}
	if roleName != "" {
		if cfg.Role, err = model.ParseRole(roleName); err != nil {
			return nil, err
		}
	}
	if cfg.UserName != "" {
		cfg.UserName = userConfig.DisplayName
	}

	if len(args) > 0 {
		cfg.ItemsFile = args[0]
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// loadConfigFile loads the configuration file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise an empty configuration is used when no file is found.
func loadConfigFile(explicitPath string) (*config.File, error) {
	path := config.FindConfigFile(explicitPath)
	if path == "" {
		if explicitPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", explicitPath)
		}
		return &config.File{Users: make(map[string]config.UserConfig)}, nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cf, nil
}

// applyFileDefaults copies the config file defaults into cfg.
// Invalid format names are left for flag parsing to report.
func applyFileDefaults(cfg *config.Config) {
	d := cfg.File.Defaults
	if formats, err := parseFormats(d.Formats); err == nil && len(formats) > 0 {
		cfg.Formats = formats
	}
	if d.User != "" {
		cfg.UserName = d.User
	}
	cfg.Escape = d.Escape
	cfg.OutputDir = d.OutputDir
}

// parseFormats converts format names into report types, dropping duplicates.
func parseFormats(names []string) ([]model.ReportType, error) {
	seen := make(map[model.ReportType]bool, len(names))
	formats := make([]model.ReportType, 0, len(names))
	for _, name := range names {
		rt, err := model.ParseReportType(name)
		if err != nil {
			return nil, err
		}
		if seen[rt] {
			continue
		}
		seen[rt] = true
		formats = append(formats, rt)
	}
	return formats, nil
}

// runGenerate loads the items, renders every requested report, writes
// them and records them in the database.
func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting report generation",
		"formats", cfg.Formats,
		"user", cfg.UserName,
		"role", cfg.Role,
		"itemsFile", cfg.ItemsFile,
		"dataset", cfg.Dataset,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.ReportDB
	if cfg.SaveToDB || cfg.Dataset != "" {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	items, source, err := loadItems(ctx, cfg, db)
	if err != nil {
		return err
	}

	results, err := renderReports(ctx, cfg, items, logger)
	if err != nil {
		return err
	}

	if err := writeReports(cmd, cfg, results); err != nil {
		return err
	}

	if cfg.SaveToDB {
		for _, result := range results {
			if err := saveReport(ctx, db, source, result, logger); err != nil {
				logger.Error("failed to save report", "type", result.Type, "error", err)
			}
		}
	}

	return nil
}

// loadItems reads the items from the configured source. The returned
// source names the file or dataset for the report history.
func loadItems(ctx context.Context, cfg *config.Config, db *database.ReportDB) ([]model.Item, string, error) {
	if cfg.Dataset != "" {
		items, err := db.ListItems(ctx, cfg.Dataset)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load dataset %q: %w", cfg.Dataset, err)
		}
		return items, cfg.Dataset, nil
	}

	items, err := dataset.LoadFile(cfg.ItemsFile)
	if err != nil {
		return nil, "", err
	}
	return items, cfg.ItemsFile, nil
}

// renderReports renders one report per format. Several formats are
// rendered concurrently.
func renderReports(ctx context.Context, cfg *config.Config, items []model.Item, logger *slog.Logger) ([]*report.Result, error) {
	formats := report.DefaultFormats()
	if cfg.Escape {
		formats = report.EscapingFormats()
	}
	generator := report.NewGenerator(report.WithFormats(formats), report.WithLogger(logger))

	if len(cfg.Formats) == 1 {
		result, err := generator.Generate(cfg.Formats[0], cfg.User(), items)
		if err != nil {
			return nil, err
		}
		return []*report.Result{result}, nil
	}

	requests := make([]report.Request, len(cfg.Formats))
	for i, rt := range cfg.Formats {
		requests[i] = report.Request{Type: rt, User: cfg.User(), Items: items}
	}

	batch := report.NewBatchGenerator(generator,
		report.WithConcurrency(cfg.Concurrency),
		report.WithBatchLogger(logger),
	)
	return batch.Generate(ctx, requests)
}

// writeReports sends the results to stdout, the output directory, or both.
func writeReports(cmd *cobra.Command, cfg *config.Config, results []*report.Result) error {
	separator, err := cmd.Flags().GetString("separator")
	if err != nil {
		return err
	}
	stream := report.NewStreamWriter(cmd.OutOrStdout(), report.WithSeparator(separator))
	if cfg.OutputDir == "" {
		return writeAll(stream, results)
	}

	dir := report.NewDirWriter(cfg.OutputDir)
	var w report.Writer = dir
	if cfg.Tee {
		w = report.NewMultiWriter(dir, stream)
	}
	if err := writeAll(w, results); err != nil {
		return err
	}

	for _, path := range dir.Paths() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}
	return nil
}

// writeAll writes every result with w.
func writeAll(w report.Writer, results []*report.Result) error {
	for _, result := range results {
		if _, err := w.Write(result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// saveReport records a report in the database.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.ReportDB, source string, result *report.Result, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	record := &database.ReportRecord{
		ReportType: result.Type,
		UserName:   result.User.Name,
		Role:       result.User.Role,
		Dataset:    source,
		Included:   result.Included,
		Excluded:   result.Excluded,
		Total:      result.Total,
		Body:       result.Text,
	}
	if err := db.SaveReport(ctx, record); err != nil {
		return err
	}

	logger.Info("report saved to database", "id", record.ID, "digest", record.Digest)
	return nil
}

