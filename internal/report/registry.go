package report

import "github.com/nao1215/reportgen/internal/model"

// Registry maps each report type to its format.
// It is built once and not modified while reports are generated.
type Registry map[model.ReportType]Format

// DefaultFormats returns the built-in formats with verbatim interpolation.
func DefaultFormats() Registry {
	return Registry{
		model.ReportTypeCSV:      NewCSVFormat(),
		model.ReportTypeHTML:     NewHTMLFormat(),
		model.ReportTypeMarkdown: NewMarkdownFormat(),
	}
}

// EscapingFormats returns the built-in formats with escaping enabled.
func EscapingFormats() Registry {
	return Registry{
		model.ReportTypeCSV:      NewCSVFormat(WithEscaping()),
		model.ReportTypeHTML:     NewHTMLFormat(WithEscaping()),
		model.ReportTypeMarkdown: NewMarkdownFormat(WithEscaping()),
	}
}

// Lookup returns the format for t.
// Unregistered report types return an *model.UnknownKeyError carrying t.
func (reg Registry) Lookup(t model.ReportType) (Format, error) {
	f, ok := reg[t]
	if !ok {
		return nil, &model.UnknownKeyError{Category: model.CategoryFormat, Key: string(t)}
	}
	return f, nil
}
