// Package config provides configuration structures and utilities for reportgen.
// It defines the report selection options, item sources, output settings
// and the optional .reportgen file with per-user defaults.
package config
