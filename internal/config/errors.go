package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoFormat is returned when no report format is selected.
	ErrNoFormat = errors.New("no report format specified: use --format")

	// ErrNoUser is returned when the viewing user has no name.
	ErrNoUser = errors.New("no user specified: use --user or set defaults.user in the config file")

	// ErrNoItemSource is returned when neither an items file nor a dataset is given.
	ErrNoItemSource = errors.New("no items specified: provide an items file or use --dataset")

	// ErrConflictingItemSources is returned when both an items file and a
	// dataset are given.
	ErrConflictingItemSources = errors.New("conflicting item sources: an items file and --dataset cannot be used together")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid batch size: must be positive")
)
