package binder

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxBodySize is the default maximum size for request bodies (1MB).
const DefaultMaxBodySize = 1 << 20 // 1 MB

type config struct {
	maxBodySize int64
}

// Option configures Decode and Request.
type Option func(*config)

// WithMaxBodySize limits the accepted request body size. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// Format is the wire format of a request body.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// MediaFormat maps a Content-Type header to a body format.
func MediaFormat(contentType string) (Format, error) {
	if contentType == "" {
		return "", fmt.Errorf("%w: expected application/json or application/yaml", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch strings.ToLower(mediaType) {
	case "application/json":
		return FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: got %s, expected application/json or application/yaml", ErrUnsupportedMediaType, mediaType)
	}
}

// Decode reads the body of r into v, choosing the decoder from the
// Content-Type header. It does not validate v.
func Decode(r *http.Request, v any, opts ...Option) error {
	cfg := config{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Check for context timeout
	if err := r.Context().Err(); err != nil {
		return fmt.Errorf("request cancelled: %w", err)
	}

	format, err := MediaFormat(r.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	// Read the entire body with size limit
	body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxBodySize+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(body)) > cfg.maxBodySize {
		return fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, cfg.maxBodySize)
	}

	if format == FormatYAML {
		return DecodeYAML(strings.NewReader(string(body)), v)
	}
	return DecodeJSON(strings.NewReader(string(body)), v)
}

// Request decodes the body of r into v and validates v when it implements
// validator.Validatable.
func Request(r *http.Request, v any, opts ...Option) error {
	if err := Decode(r, v, opts...); err != nil {
		return err
	}
	return validate(v)
}
