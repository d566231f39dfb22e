package report

import (
	"encoding/csv"
	"strings"

	"github.com/nao1215/reportgen/internal/model"
)

const (
	// csvHeader is the fixed column header line.
	csvHeader = "ID,NOME,VALOR,USUARIO\n"

	// csvTotalLabel is the label line that precedes the total.
	csvTotalLabel = "Total,,"
)

// CSVFormat renders comma separated values.
// Without escaping, separators and line breaks inside field values are
// written as-is and can break the column layout.
type CSVFormat struct {
	opts formatOptions
}

// NewCSVFormat creates a CSVFormat.
func NewCSVFormat(opts ...FormatOption) *CSVFormat {
	return &CSVFormat{opts: newFormatOptions(opts)}
}

// Header returns the column header line. The user is not part of it.
func (f *CSVFormat) Header(model.User) string {
	return csvHeader
}

// FormatItem returns "id,name,value,user" followed by a line break.
func (f *CSVFormat) FormatItem(item model.Item, user model.User) string {
	fields := []string{item.ID, item.Name, model.FormatValue(item.Value), user.Name}
	if f.opts.escape {
		return quoteCSV(fields)
	}
	return strings.Join(fields, ",") + "\n"
}

// Footer returns a blank line, the total label line and the total line.
func (f *CSVFormat) Footer(total float64) string {
	return "\n" + csvTotalLabel + "\n" + model.FormatValue(total) + ",,\n"
}

// quoteCSV encodes one record with RFC 4180 quoting.
func quoteCSV(fields []string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	// Writing to a strings.Builder cannot fail.
	_ = w.Write(fields) //nolint:errcheck
	w.Flush()
	return sb.String()
}
