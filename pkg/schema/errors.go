package schema

import "errors"

var (
	// Definition errors
	ErrInvalidDefinition  = errors.New("invalid schema definition")
	ErrEmptyFieldName     = errors.New("field name is empty")
	ErrDuplicateField     = errors.New("duplicate field")
	ErrUnknownShape       = errors.New("unknown shape")
	ErrInvalidRule        = errors.New("invalid rule")
	ErrUnknownPredicate   = errors.New("unknown predicate")
	ErrDuplicatePredicate = errors.New("predicate already registered")

	// Document errors
	ErrNotAnObject = errors.New("document must be an object")

	// Loading errors
	ErrUnsupportedFormat = errors.New("unsupported schema file format")
	ErrFailedToParse     = errors.New("failed to parse schema")
	ErrFailedToReadFile  = errors.New("failed to read schema file")
	ErrFailedToReadDir   = errors.New("failed to read schema directory")
	ErrLoadingCancelled  = errors.New("loading schema cancelled")
	ErrDuplicateSchema   = errors.New("duplicate schema name")
)
