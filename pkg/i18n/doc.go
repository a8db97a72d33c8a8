// Package i18n renders validation failures in the caller's language.
//
// Message catalogs map a language code to templates keyed by failure kind
// ("minimum", "pattern", "unique_items" and so on). Templates use named
// placeholders, "%{limit}" or "%{actual}", filled from the failure's Params.
// Numbers are formatted for the target language through golang.org/x/text.
//
// # Architecture
//
// The Translator delegates storage to a CatalogAdapter. Adapters for in-memory
// maps, single files and any fs.FS (directories on disk or embed.FS) are
// included; catalogs for English and German are embedded in the package.
// Parsers for YAML and JSON are chosen by file extension.
//
// # Usage
//
//	tr, err := i18n.Default(ctx)
//	if err != nil {
//		return err
//	}
//	rule := validator.Minimum(1000).WithMessage(tr.Formatter("de"))
//	rule.Validate(5) // die Zahl muss `>= 1.000` sein.
//
// Schemas take the formatter per call:
//
//	err := s.ValidateWith(doc, tr.Formatter(tr.Match(r.Header.Get("Accept-Language"))))
//
// # HTTP Middleware
//
// Middleware stores the negotiated language in the request context, where
// Translator.FormatterContext picks it up:
//
//	mux.Use(i18n.Middleware(i18n.TranslatorExtractor(tr), tr.DefaultLanguage()))
//
// # Error Handling
//
// Loading errors wrap the sentinels in errors.go; use errors.Is to tell a
// cancelled load from a broken catalog. ExportJSON returns an
// *ErrLanguageNotSupported for unknown languages.
package i18n
