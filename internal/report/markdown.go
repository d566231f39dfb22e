package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/reportgen/internal/model"
)

// MarkdownFormat renders a GitHub Flavored Markdown document with a
// pipe table. Priority rows are written in bold.
type MarkdownFormat struct {
	opts formatOptions
}

// NewMarkdownFormat creates a MarkdownFormat.
func NewMarkdownFormat(opts ...FormatOption) *MarkdownFormat {
	return &MarkdownFormat{opts: newFormatOptions(opts)}
}

// Header writes the title, the user line and the table header.
func (f *MarkdownFormat) Header(user model.User) string {
	md := markdown.NewMarkdown(io.Discard)
	md.H1(htmlTitle)
	md.PlainText("")
	md.H2("Usuário: " + user.Name)
	md.PlainText("")
	// Rows arrive one at a time, so the pipe table is written by hand.
	md.PlainText("| ID | Nome | Valor |")
	md.PlainText("| --- | --- | --- |")
	return md.String() + "\n"
}

// FormatItem returns one table row.
func (f *MarkdownFormat) FormatItem(item model.Item, _ model.User) string {
	cells := []string{f.cell(item.ID), f.cell(item.Name), model.FormatValue(item.Value)}
	if item.Priority {
		for i, c := range cells {
			cells[i] = markdown.Bold(c)
		}
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// Footer writes a blank line and the bold total.
func (f *MarkdownFormat) Footer(total float64) string {
	md := markdown.NewMarkdown(io.Discard)
	md.PlainText("")
	md.PlainText(markdown.Bold("Total: " + model.FormatValue(total)))
	return md.String() + "\n"
}

// cell returns s with table pipes escaped when escaping is enabled.
func (f *MarkdownFormat) cell(s string) string {
	if f.opts.escape {
		return strings.ReplaceAll(s, "|", `\|`)
	}
	return s
}
