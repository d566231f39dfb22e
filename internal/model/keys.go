package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role identifies the viewing user's role.
type Role string

const (
	// RoleAdmin sees every item and gets priority enrichment.
	RoleAdmin Role = "ADMIN"

	// RoleUser is a standard user who only sees low-value items.
	RoleUser Role = "USER"
)

// Roles returns every known role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser}
}

// String returns the role identifier.
func (r Role) String() string {
	return string(r)
}

// ReportType identifies an output format.
type ReportType string

const (
	// ReportTypeCSV renders comma separated values.
	ReportTypeCSV ReportType = "CSV"

	// ReportTypeHTML renders a standalone HTML document with a table.
	ReportTypeHTML ReportType = "HTML"

	// ReportTypeMarkdown renders a Markdown document with a pipe table.
	ReportTypeMarkdown ReportType = "MARKDOWN"
)

// ReportTypes returns every known report type in display order.
func ReportTypes() []ReportType {
	return []ReportType{ReportTypeCSV, ReportTypeHTML, ReportTypeMarkdown}
}

// String returns the report type identifier.
func (t ReportType) String() string {
	return string(t)
}

// Extension returns the file extension used when a report is written to disk.
// Unknown report types fall back to "txt".
func (t ReportType) Extension() string {
	switch t {
	case ReportTypeCSV:
		return "csv"
	case ReportTypeHTML:
		return "html"
	case ReportTypeMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// normalizeKey trims and upper-cases user supplied identifiers.
// A Caser holds transform state, so each call builds its own.
func normalizeKey(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// ParseRole converts user input such as "admin" into a Role.
// Unknown roles return an *UnknownKeyError.
func ParseRole(s string) (Role, error) {
	r := Role(normalizeKey(s))
	for _, known := range Roles() {
		if r == known {
			return r, nil
		}
	}
	return "", &UnknownKeyError{Category: CategoryRole, Key: s}
}

// ParseReportType converts user input such as "html" into a ReportType.
// Unknown report types return an *UnknownKeyError.
func ParseReportType(s string) (ReportType, error) {
	t := ReportType(normalizeKey(s))
	for _, known := range ReportTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", &UnknownKeyError{Category: CategoryFormat, Key: s}
}
