package i18n

import (
	"context"
	"net/http"
)

type localeContextKey struct{}

// SetLocale stores the negotiated language in ctx.
func SetLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// GetLocale returns the language stored by SetLocale, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if lang, _ := ctx.Value(localeContextKey{}).(string); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Middleware stores the request language in the request context, where
// GetLocale and Translator.FormatterContext find it. A nil extractor uses
// DefaultLangExtractor; an empty result falls back to fallback, or to
// DefaultLanguage when fallback is empty.
func Middleware(extr LangExtractor, fallback string) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	if fallback == "" {
		fallback = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = fallback
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
