package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the parsed part of an Accept-Language header.
// Legitimate headers are far shorter.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the supported language that best fits an
// Accept-Language header, honoring quality values. Regional variants match
// their base language (de-AT matches de). It returns defaultLang when the
// header is empty, malformed or matches nothing.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, len(supportedLangs))
	for i, lang := range supportedLangs {
		tags[i] = language.Make(lang)
	}
	return matchLanguage(language.NewMatcher(tags), supportedLangs, header, defaultLang)
}

func matchLanguage(m language.Matcher, supported []string, header, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
		if idx := strings.LastIndex(header, ","); idx > 0 {
			header = header[:idx]
		}
	}

	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return defaultLang
	}

	_, idx, confidence := m.Match(requested...)
	if confidence == language.No {
		return defaultLang
	}
	return strings.ToLower(supported[idx])
}
