package logger

import "errors"

// Sentinel errors for the logger package.
var (
	// ErrInvalidLevel is returned for an unrecognized log level name.
	ErrInvalidLevel = errors.New("logger: invalid level")

	// ErrInvalidFormat is returned for an unsupported output format.
	ErrInvalidFormat = errors.New("logger: invalid format")
)
