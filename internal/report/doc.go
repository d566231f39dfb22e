// Package report renders line items into textual reports.
//
// This package contains:
//   - Format: the rendering rules of one output shape (CSV, HTML, Markdown)
//   - Registry: the closed mapping from report type to Format
//   - Generator: resolves the format and role strategies, filters and
//     enriches items, accumulates the total and joins the fragments
//   - BatchGenerator: renders several independent reports concurrently
//   - Writer: sends finished reports to a stream or to files
//
// Formats only turn already filtered items into text. Visibility and
// enrichment belong to the role package, so a new output shape never has
// to know about roles and a new role never has to know about output shapes.
//
// Field values are interpolated without escaping unless a format is built
// with WithEscaping. The unescaped output is the reference byte layout.
package report
