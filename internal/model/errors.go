package model

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is matched by every *UnknownKeyError through errors.Is.
var ErrUnknownKey = errors.New("unknown strategy key")

// KeyCategory tells which registry rejected a key.
type KeyCategory int

const (
	// CategoryFormat is the report type registry.
	CategoryFormat KeyCategory = iota

	// CategoryRole is the user role registry.
	CategoryRole
)

// String returns a human-readable name for the category.
func (c KeyCategory) String() string {
	switch c {
	case CategoryFormat:
		return "report type"
	case CategoryRole:
		return "user role"
	default:
		return "unknown"
	}
}

// UnknownKeyError is returned when a report type or user role is not
// registered. Report generation aborts before producing any output.
type UnknownKeyError struct {
	// Category is the registry that rejected the key.
	Category KeyCategory

	// Key is the offending identifier as supplied by the caller.
	Key string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Category, e.Key)
}

// Is reports whether target is ErrUnknownKey.
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}
