package validator

import "errors"

var (
	// ErrValidationFailed matches every *Tree through errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidPattern is returned when a pattern source is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidCacheSize is returned when a pattern cache is created with a non-positive size.
	ErrInvalidCacheSize = errors.New("pattern cache size must be positive")
)
