package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML request body")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrEmptyBody            = errors.New("empty body")
	ErrInvalidTarget        = errors.New("target must be a non-nil pointer")
)
