package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes catalog files of one format.
type Parser interface {
	// Parse returns the catalog held by content. The top level keys are
	// language codes, the nested keys failure kinds.
	Parse(ctx context.Context, content string) (Catalog, error)

	// SupportsFileExtension reports whether files with ext ("json" or ".json") are handled.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch ext := path.Ext(filename); {
	case NewJSONParser().SupportsFileExtension(ext):
		return NewJSONParser()
	case NewYAMLParser().SupportsFileExtension(ext):
		return NewYAMLParser()
	default:
		return nil
	}
}

func hasExtension(ext string, names ...string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, name := range names {
		if strings.EqualFold(ext, name) {
			return true
		}
	}
	return false
}

// JSONParser reads catalogs such as {"de": {"minimum": "..."}}.
type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) SupportsFileExtension(ext string) bool { return hasExtension(ext, "json") }

func (p *JSONParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrJSONParsingCancelled, err)
	}

	var catalog Catalog
	if err := json.Unmarshal([]byte(content), &catalog); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s: templates must be strings grouped by language", ErrInvalidCatalog, typeErr.Field)
		}
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return catalog.normalized()
}

// YAMLParser reads catalogs with one top level mapping per language.
// Templates must be plain strings; numbers and booleans are rejected with
// their line so a typo such as `minimum: 3` is easy to find.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "yaml", "yml")
}

func (p *YAMLParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of languages", ErrInvalidCatalog, root.Line)
	}

	catalog := make(Catalog, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		lang, entries := root.Content[i].Value, root.Content[i+1]
		if entries.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: line %d: language %q: expected a mapping of templates", ErrInvalidCatalog, entries.Line, lang)
		}

		templates := make(map[string]string, len(entries.Content)/2)
		for j := 0; j+1 < len(entries.Content); j += 2 {
			kind, tmpl := entries.Content[j].Value, entries.Content[j+1]
			if tmpl.Kind != yaml.ScalarNode || tmpl.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: line %d: %s.%s: template must be a string", ErrInvalidCatalog, tmpl.Line, lang, kind)
			}
			templates[kind] = tmpl.Value
		}
		catalog[lang] = templates
	}
	return catalog.normalized()
}
