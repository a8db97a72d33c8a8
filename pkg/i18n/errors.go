package i18n

import "errors"

// Context cancellation errors are kept apart from parsing errors so callers can
// tell timeouts from broken catalogs.
var (
	// JSON operations
	ErrFailedToMarshalJSON  = errors.New("failed to marshal catalog to JSON")
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	// YAML operations
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	// Catalog structure
	ErrInvalidCatalog = errors.New("invalid message catalog")
	ErrNilAdapter     = errors.New("catalog adapter is nil")

	// File operations
	ErrLoadingFileCancelled = errors.New("loading catalog file cancelled")
	ErrFailedToReadFile     = errors.New("failed to read catalog file")
	ErrFailedToParseFile    = errors.New("failed to parse catalog file")

	// Directory operations
	ErrFailedToReadDirectory     = errors.New("failed to read catalog directory")
	ErrLoadingDirectoryCancelled = errors.New("loading catalogs from directory cancelled")
	ErrNoCatalogFiles            = errors.New("no catalog files found")
)
