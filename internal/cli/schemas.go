package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/validkit/pkg/i18n"
	"github.com/dmitrymomot/validkit/pkg/schema"
)

func isSchemaFile(ref string) bool {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (a *app) schemaOptions() []schema.Option {
	return []schema.Option{schema.WithPatternCache(a.patterns)}
}

// loadSchema resolves ref as a schema file path, or as a schema name inside
// the configured schema directory.
func (a *app) loadSchema(ctx context.Context, ref string) (*schema.Schema, error) {
	if isSchemaFile(ref) {
		s, err := schema.Load(ctx, ref, a.schemaOptions()...)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}
		return s, nil
	}

	set, err := schema.LoadDir(ctx, a.cfg.SchemaDir, a.schemaOptions()...)
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	s, ok := set.Get(ref)
	if !ok {
		return nil, fmt.Errorf("%w: schema %q not found in %s", ErrLoad, ref, a.cfg.SchemaDir)
	}
	return s, nil
}

// translator builds the message translator: the built-in catalogs, merged
// with the catalogs of the locales directory when one is configured.
func (a *app) translator(ctx context.Context) (*i18n.Translator, error) {
	opts := []i18n.Option{
		i18n.WithDefaultLanguage(a.cfg.DefaultLang),
		i18n.WithLogger(a.log),
	}

	var (
		tr  *i18n.Translator
		err error
	)
	if a.cfg.LocalesDir != "" {
		tr, err = i18n.Merge(ctx, i18n.NewDirectoryAdapter(i18n.NewYAMLParser(), a.cfg.LocalesDir), opts...)
	} else {
		tr, err = i18n.Default(ctx, opts...)
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return tr, nil
}
