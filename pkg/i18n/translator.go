package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

// valueKey names the catalog entry used for the word "value" in range expressions.
const valueKey = "value"

// Translator renders validation failures from message catalogs. Numbers are
// formatted for the target language, so German output reads "1.000" and "0,5".
// A Translator is immutable after construction and safe for concurrent use.
type Translator struct {
	catalog        Catalog
	supported      []string
	matcher        language.Matcher
	defaultLang    string
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads the catalog through adapter and applies options.
func NewTranslator(ctx context.Context, adapter CatalogAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	catalog, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.validateCatalog(catalog); err != nil {
		return nil, err
	}

	t.catalog = catalog
	t.supported = t.supportedLanguages()
	tags := make([]language.Tag, len(t.supported))
	for i, lang := range t.supported {
		tags[i] = language.Make(lang)
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.InfoContext(ctx, "message catalogs loaded", "languages", t.Languages())
	return t, nil
}

// Default returns a translator over the built-in English and German catalogs.
func Default(ctx context.Context, options ...Option) (*Translator, error) {
	return NewTranslator(ctx, BuiltinAdapter(), options...)
}

// Merge returns a translator over the built-in catalogs overlaid with the
// catalogs of adapter.
func Merge(ctx context.Context, adapter CatalogAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	base, err := BuiltinAdapter().Load(ctx)
	if err != nil {
		return nil, err
	}
	extra, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	base.merge(extra)
	return NewTranslator(ctx, &MapAdapter{Data: base}, options...)
}

func (t *Translator) validateCatalog(catalog Catalog) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: no languages", ErrInvalidCatalog)
	}

	for lang, templates := range catalog {
		if lang == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidCatalog)
		}
		if _, err := language.Parse(lang); err != nil {
			return errors.Join(fmt.Errorf("%w: language %q", ErrInvalidCatalog, lang), err)
		}
		for kind := range templates {
			if kind != valueKey && !isKnownKind(kind) {
				t.logger.Warn("unknown failure kind in catalog", "lang", lang, "kind", kind)
			}
		}
	}

	if _, ok := catalog[t.defaultLang]; !ok {
		t.logger.Warn("default language has no catalog", "lang", t.defaultLang)
	}
	return nil
}

var knownKinds = []validator.Kind{
	validator.KindMinimum, validator.KindMaximum,
	validator.KindExclusiveMinimum, validator.KindExclusiveMaximum,
	validator.KindRange, validator.KindMultipleOf, validator.KindPattern,
	validator.KindMinLength, validator.KindMaxLength,
	validator.KindMinItems, validator.KindMaxItems,
	validator.KindMinProperties, validator.KindMaxProperties,
	validator.KindUniqueItems, validator.KindEnumerate, validator.KindCustom,
}

func isKnownKind(kind string) bool {
	return slices.Contains(knownKinds, validator.Kind(kind))
}

// supportedLanguages returns the catalog languages, default language first.
func (t *Translator) supportedLanguages() []string {
	langs := t.Languages()
	if i := slices.Index(langs, t.defaultLang); i > 0 {
		langs = append([]string{t.defaultLang}, slices.Delete(langs, i, i+1)...)
	}
	return langs
}

// Languages returns the catalog languages in sorted order.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.catalog))
	for lang := range t.catalog {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (t *Translator) HasLanguage(lang string) bool {
	_, ok := t.catalog[strings.ToLower(lang)]
	return ok
}

func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Match picks the best supported language for an Accept-Language header,
// or the default language when nothing matches.
func (t *Translator) Match(header string) string {
	return matchLanguage(t.matcher, t.supported, header, t.defaultLang)
}

// lookup finds the template for kind in lang, then in its base language,
// then in the default language. It returns the language the template came from.
func (t *Translator) lookup(lang, kind string) (string, string, bool) {
	lang = strings.ToLower(lang)
	candidates := []string{lang}
	if idx := strings.Index(lang, "-"); idx > 0 {
		candidates = append(candidates, lang[:idx])
	}
	candidates = append(candidates, t.defaultLang)

	for _, c := range candidates {
		if tmpl, ok := t.catalog[c][kind]; ok {
			return tmpl, c, true
		}
	}
	return "", "", false
}

// Message renders f in lang. Failures without a template fall back to their
// default message.
func (t *Translator) Message(lang string, f validator.Failure) string {
	tmpl, resolved, ok := t.lookup(lang, string(f.Kind()))
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("missing message template", "lang", lang, "kind", f.Kind())
		}
		return f.DefaultMessage()
	}

	render := numberRenderer(resolved)

	params := f.Params()
	if f.Kind() == validator.KindRange {
		params["range"] = t.rangeExpression(resolved, params, render)
	}
	return validator.Expand(tmpl, params, render)
}

// numberRenderer formats parameters for lang. English keeps the plain
// rendering of the default messages ("1000"); other languages group digits
// and use their decimal separator.
func numberRenderer(lang string) func(any) string {
	tag := language.Make(lang)
	if base, _ := tag.Base(); base.String() == "en" {
		return func(v any) string { return fmt.Sprint(v) }
	}
	printer := message.NewPrinter(tag)
	return func(v any) string {
		if s, ok := v.(string); ok {
			return s
		}
		return printer.Sprint(v)
	}
}

// rangeExpression rebuilds "1 <= value < 10" with localized numbers and the
// catalog's word for "value".
func (t *Translator) rangeExpression(lang string, params map[string]any, render func(any) string) string {
	word := "value"
	if w, _, ok := t.lookup(lang, valueKey); ok {
		word = w
	}

	var b strings.Builder
	if v, ok := params["minimum"]; ok {
		fmt.Fprintf(&b, "%s <= ", render(v))
	} else if v, ok := params["exclusive_minimum"]; ok {
		fmt.Fprintf(&b, "%s < ", render(v))
	}
	b.WriteString(word)
	if v, ok := params["maximum"]; ok {
		fmt.Fprintf(&b, " <= %s", render(v))
	} else if v, ok := params["exclusive_maximum"]; ok {
		fmt.Fprintf(&b, " < %s", render(v))
	}
	return b.String()
}

// Formatter returns a MessageFunc that renders failures in lang.
func (t *Translator) Formatter(lang string) validator.MessageFunc {
	return func(f validator.Failure) string {
		return t.Message(lang, f)
	}
}

// FormatterContext uses the language stored in ctx by Middleware.
func (t *Translator) FormatterContext(ctx context.Context) validator.MessageFunc {
	return t.Formatter(GetLocale(ctx))
}

// ExportJSON returns the templates of lang as JSON for client-side rendering.
func (t *Translator) ExportJSON(lang string) (string, error) {
	templates, ok := t.catalog[strings.ToLower(lang)]
	if !ok {
		return "", &ErrLanguageNotSupported{Lang: lang}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(templates); err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ErrLanguageNotSupported indicates that the requested language has no catalog.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
