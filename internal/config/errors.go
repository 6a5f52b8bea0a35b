package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalid indicates the configuration fails validation.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("config: watcher closed")
)
