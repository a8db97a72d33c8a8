package i18n

import (
	"fmt"
	"net/http"
	"strings"
)

// LangExtractor returns the language requested by an HTTP request, or "".
type LangExtractor func(r *http.Request) string

// Catalog maps a language code to message templates keyed by failure kind,
// e.g. catalog["de"]["minimum"].
type Catalog map[string]map[string]string

// merge copies the templates of other into c. Later entries win.
func (c Catalog) merge(other Catalog) {
	for lang, templates := range other {
		if c[lang] == nil {
			c[lang] = make(map[string]string, len(templates))
		}
		for kind, tmpl := range templates {
			c[lang][kind] = tmpl
		}
	}
}

// normalized lower-cases language codes, merging "DE" into "de", and rejects
// empty catalogs.
func (c Catalog) normalized() (Catalog, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}
	out := make(Catalog, len(c))
	for lang, templates := range c {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidCatalog)
		}
		if templates == nil {
			return nil, fmt.Errorf("%w: language %q has no templates", ErrInvalidCatalog, lang)
		}
		out.merge(Catalog{lang: templates})
	}
	return out, nil
}
