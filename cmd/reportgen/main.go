// Package main provides the entry point for the reportgen CLI.
//
// reportgen renders line items into CSV, HTML or Markdown reports, showing
// each user only the items their role may see.
//
// Usage:
//
//	reportgen generate items.yaml --user Alice --role admin --format html
//	reportgen import office items.yaml
//	reportgen history
//
// See --help for all available options.
package main

// main is the entry point for reportgen.
func main() {
	Execute()
}
