package report

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/reportgen/internal/model"
)

const (
	// htmlTitle is the literal report title.
	htmlTitle = "Relatório"

	// htmlPriorityStyle is the inline style carried by priority rows.
	htmlPriorityStyle = ` style="font-weight:bold;"`
)

// HTMLFormat renders a standalone HTML document containing one table.
// Without escaping, the user name and item fields are embedded verbatim.
type HTMLFormat struct {
	opts formatOptions
}

// NewHTMLFormat creates an HTMLFormat.
func NewHTMLFormat(opts ...FormatOption) *HTMLFormat {
	return &HTMLFormat{opts: newFormatOptions(opts)}
}

// Header opens the document, writes the title and user name and opens
// the table with its ID, Nome and Valor header row.
func (f *HTMLFormat) Header(user model.User) string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")
	sb.WriteString("<h1>" + htmlTitle + "</h1>\n")
	sb.WriteString("<h2>Usuário: " + f.text(user.Name) + "</h2>\n")
	sb.WriteString("<table>\n")
	sb.WriteString("<tr><th>ID</th><th>Nome</th><th>Valor</th></tr>\n")
	return sb.String()
}

// FormatItem returns one table row. Priority rows are bold.
func (f *HTMLFormat) FormatItem(item model.Item, _ model.User) string {
	style := ""
	if item.Priority {
		style = htmlPriorityStyle
	}
	return "<tr" + style + ">" +
		"<td>" + f.text(item.ID) + "</td>" +
		"<td>" + f.text(item.Name) + "</td>" +
		"<td>" + model.FormatValue(item.Value) + "</td>" +
		"</tr>\n"
}

// Footer closes the table, writes the total heading and closes the document.
func (f *HTMLFormat) Footer(total float64) string {
	var sb strings.Builder
	sb.WriteString("</table>\n")
	sb.WriteString("<h3>Total: " + model.FormatValue(total) + "</h3>\n")
	sb.WriteString("</body></html>\n")
	return sb.String()
}

// text returns s escaped when escaping is enabled.
func (f *HTMLFormat) text(s string) string {
	if f.opts.escape {
		return html.EscapeString(s)
	}
	return s
}
