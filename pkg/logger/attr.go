package logger

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Schema records the schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Document records the validated document (a file path or "request") under the key "document".
func Document(name string) slog.Attr {
	return slog.String("document", name)
}

// Language records the message language under the key "lang".
func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Failures records the number of failure messages in a validation error
// under the key "failures". Errors that are not validation trees count as zero.
func Failures(err error) slog.Attr {
	n := 0
	if tree, ok := validator.AsTree(err); ok {
		n = tree.Count()
	}
	return slog.Int("failures", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
