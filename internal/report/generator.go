package report

import (
	"log/slog"
	"strings"

	"github.com/nao1215/reportgen/internal/model"
	"github.com/nao1215/reportgen/internal/role"
)

// Result is a rendered report together with the figures behind it.
type Result struct {
	// Type is the report type that was rendered.
	Type model.ReportType

	// User is the user the report was rendered for.
	User model.User

	// Text is the trimmed report text.
	Text string

	// Included is the number of items that passed the role filter.
	Included int

	// Excluded is the number of items hidden by the role filter.
	Excluded int

	// Total is the sum of the processed values of the included items.
	Total float64
}

// Generator renders reports by combining a format with a role strategy.
// A Generator holds no per-call state and may be used concurrently.
type Generator struct {
	formats Registry
	roles   role.Registry
	logger  *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFormats replaces the format registry.
func WithFormats(formats Registry) GeneratorOption {
	return func(g *Generator) {
		g.formats = formats
	}
}

// WithRoles replaces the role registry.
func WithRoles(roles role.Registry) GeneratorOption {
	return func(g *Generator) {
		g.roles = roles
	}
}

// WithLogger sets the logger used for debug output.
// Without it the generator logs to slog.Default().
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator using the default registries unless
// options replace them.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		formats: DefaultFormats(),
		roles:   role.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// log returns the configured logger, or the current default logger.
func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

// GenerateReport renders items for user in the given report type and
// returns the trimmed text.
//
// Both strategies are resolved before anything is rendered, so an unknown
// report type or role returns an *model.UnknownKeyError and no text.
// Items keep their input order; items hidden from the role are skipped
// entirely. The caller's items are not modified.
func (g *Generator) GenerateReport(reportType model.ReportType, user model.User, items []model.Item) (string, error) {
	result, err := g.Generate(reportType, user, items)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Generate is GenerateReport returning the included and excluded counts
// and the total alongside the text.
func (g *Generator) Generate(reportType model.ReportType, user model.User, items []model.Item) (*Result, error) {
	format, err := g.formats.Lookup(reportType)
	if err != nil {
		return nil, err
	}

	strategy, err := g.roles.Lookup(user.Role)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Type: reportType,
		User: user,
	}

	var sb strings.Builder
	sb.WriteString(format.Header(user))

	for _, item := range items {
		if !strategy.ShouldInclude(item) {
			result.Excluded++
			continue
		}

		processed := strategy.ProcessItem(item)
		sb.WriteString(format.FormatItem(processed, user))
		result.Total += processed.Value
		result.Included++
	}

	sb.WriteString(format.Footer(result.Total))
	result.Text = strings.TrimSpace(sb.String())

	g.log().Debug("report generated",
		"type", reportType,
		"user", user.Name,
		"role", user.Role,
		"included", result.Included,
		"excluded", result.Excluded,
		"total", result.Total,
	)

	return result, nil
}

// defaultGenerator backs the package-level GenerateReport.
var defaultGenerator = NewGenerator()

// GenerateReport renders a report with the built-in formats and roles.
func GenerateReport(reportType model.ReportType, user model.User, items []model.Item) (string, error) {
	return defaultGenerator.GenerateReport(reportType, user, items)
}
