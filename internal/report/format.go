package report

import "github.com/nao1215/reportgen/internal/model"

// Format renders the fragments of one report shape.
// Implementations are stateless after construction and safe to share.
type Format interface {
	// Header returns the text placed before the first row.
	Header(user model.User) string

	// FormatItem returns the text of one row. The item has already been
	// filtered and processed by the active role strategy.
	FormatItem(item model.Item, user model.User) string

	// Footer returns the text placed after the last row.
	Footer(total float64) string
}

// formatOptions holds settings shared by all formats.
type formatOptions struct {
	// escape enables quoting or escaping of interpolated field values.
	escape bool
}

// FormatOption configures a Format at construction time.
type FormatOption func(*formatOptions)

// WithEscaping makes a format escape interpolated values for its syntax.
// CSV fields are quoted, HTML text is entity-escaped and Markdown table
// pipes are backslash-escaped. Literal headers and footers do not change.
func WithEscaping() FormatOption {
	return func(o *formatOptions) {
		o.escape = true
	}
}

// newFormatOptions applies opts over the defaults.
func newFormatOptions(opts []FormatOption) formatOptions {
	var o formatOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
