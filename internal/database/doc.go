// Package database provides SQLite-based storage for reportgen.
//
// This package implements the ReportDB, which stores:
//   - Named item datasets, kept in their original order
//   - A history of generated reports with a SHA3-256 digest of each text
//
// The database is a single CGO-free SQLite file (modernc.org/sqlite) in
// the XDG data directory unless another directory is given.
package database
