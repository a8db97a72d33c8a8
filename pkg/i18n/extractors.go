package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// maxLangCodeLength is the maximum allowed length for a language code
const maxLangCodeLength = 35 // RFC 5646 recommends 35 characters max

// langValidator validates and normalizes language codes
type langValidator struct {
	supportedLangs []string
}

func newLangValidator(supportedLangs []string) *langValidator {
	normalized := make([]string, len(supportedLangs))
	for i, lang := range supportedLangs {
		normalized[i] = strings.ToLower(lang)
	}
	return &langValidator{supportedLangs: normalized}
}

// validate returns the normalized supported language for lang, or "".
// Without a supported list every well-sized code is accepted.
func (v *langValidator) validate(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || len(lang) > maxLangCodeLength {
		return ""
	}
	if len(v.supportedLangs) == 0 || slices.Contains(v.supportedLangs, lang) {
		return lang
	}
	if idx := strings.Index(lang, "-"); idx > 0 && slices.Contains(v.supportedLangs, lang[:idx]) {
		return lang[:idx]
	}
	return ""
}

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	QueryParamName string
	CookieName     string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithQueryParamName sets the query parameter name to check for language
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithCookieName sets the cookie name to check for language preference
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithSupportedLanguages restricts the extractor to these languages.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order:
//  1. the query parameter (default "lang")
//  2. the cookie (default "lang")
//  3. the Accept-Language header
//
// It returns the first supported language found, or "".
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		QueryParamName: "lang",
		CookieName:     "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	v := newLangValidator(config.SupportedLangs)

	return func(r *http.Request) string {
		if lang := v.validate(r.URL.Query().Get(config.QueryParamName)); lang != "" {
			return lang
		}

		if cookie, err := r.Cookie(config.CookieName); err == nil {
			if lang := v.validate(cookie.Value); lang != "" {
				return lang
			}
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if len(config.SupportedLangs) > 0 {
			return ParseAcceptLanguage(header, config.SupportedLangs, "")
		}
		// without a supported list take the first listed language as is
		first, _, _ := strings.Cut(header, ",")
		first, _, _ = strings.Cut(first, ";")
		return v.validate(first)
	}
}

// TranslatorExtractor negotiates against the languages of t.
func TranslatorExtractor(t *Translator, opts ...ExtractorOption) LangExtractor {
	return DefaultLangExtractor(append([]ExtractorOption{WithSupportedLanguages(t.Languages()...)}, opts...)...)
}
