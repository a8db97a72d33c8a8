package i18n

import (
	"log/slog"
	"strings"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage names the catalog used when the requested language and
// its base language have no template, and when negotiation finds no match.
// Defaults to DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger receives catalog warnings. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every failure rendered
// with its built-in message because no catalog had a template for it.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}
