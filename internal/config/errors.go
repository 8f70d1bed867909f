package config

import "errors"

var (
	// ErrInvalidPattern is returned when an ignored URL or word is not a valid regular expression
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrNegativeValue is returned when a count or duration is below zero
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrUnknownImplementation is returned for an unsupported implementationOverride
	ErrUnknownImplementation = errors.New("unknown crawler implementation")

	// ErrUnknownFormat is returned for an unsupported resultFormat
	ErrUnknownFormat = errors.New("unknown result format")

	// ErrInvalidLogging is returned for an unsupported logging level or format
	ErrInvalidLogging = errors.New("invalid logging configuration")
)
