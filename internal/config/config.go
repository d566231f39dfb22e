package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/reportgen/internal/model"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "reportgen"

	// DefaultReportType is the report type used when none is given.
	DefaultReportType = model.ReportTypeCSV

	// DefaultRole is the role used when neither flags nor the config file
	// name one. It is the least privileged role.
	DefaultRole = model.RoleUser

	// DefaultConcurrency is the number of reports rendered at once when
	// several formats are requested.
	DefaultConcurrency = 4
)

// Config holds all options of one reportgen invocation.
// It is populated from CLI flags and the config file, then passed down
// explicitly rather than kept in global state.
type Config struct {
	// Formats are the report types to render, in output order.
	Formats []model.ReportType

	// UserName is the display name of the viewing user.
	UserName string

	// Role is the viewing user's role.
	Role model.Role

	// ItemsFile is a YAML or JSON file holding the items.
	// Mutually exclusive with Dataset.
	ItemsFile string

	// Dataset is the name of a dataset stored in the database.
	// Mutually exclusive with ItemsFile.
	Dataset string

	// OutputDir receives one file per report. When empty, reports are
	// written to stdout.
	OutputDir string

	// Tee also writes reports to stdout when OutputDir is set.
	Tee bool

	// Escape enables escaping of interpolated values in every format.
	Escape bool

	// Concurrency is the number of reports rendered at once.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// DBDir is the directory of the SQLite database.
	DBDir string

	// SaveToDB records generated reports in the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Formats:     []model.ReportType{DefaultReportType},
		Role:        DefaultRole,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// User returns the viewing user described by the configuration.
func (c *Config) User() model.User {
	return model.User{Name: c.UserName, Role: c.Role}
}

// XDGDataDir returns the XDG data directory for reportgen.
// On Linux: ~/.local/share/reportgen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reportgen.
// On Linux: ~/.config/reportgen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Formats) == 0 {
		return ErrNoFormat
	}

	if c.UserName == "" {
		return ErrNoUser
	}

	if c.ItemsFile == "" && c.Dataset == "" {
		return ErrNoItemSource
	}

	if c.ItemsFile != "" && c.Dataset != "" {
		return ErrConflictingItemSources
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
