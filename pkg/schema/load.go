package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// decodeFunc parses raw file content into generic data.
type decodeFunc func(content []byte) (map[string]any, error)

// decoderFor returns the decoder for a file extension, with or without the leading dot.
func decoderFor(ext string) (decodeFunc, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return decodeJSON, true
	case "yaml", "yml":
		return decodeYAML, true
	default:
		return nil, false
	}
}

func decodeJSON(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func decodeYAML(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Parse decodes a definition from content in the format named by ext
// ("json", "yaml" or "yml") and compiles it.
func Parse(ctx context.Context, content []byte, ext string, opts ...Option) (*Schema, error) {
	def, err := ParseDefinition(ctx, content, ext)
	if err != nil {
		return nil, err
	}
	return Compile(def, opts...)
}

// ParseDefinition decodes a definition without compiling it. Unknown keys are rejected.
func ParseDefinition(ctx context.Context, content []byte, ext string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, errors.Join(ErrLoadingCancelled, err)
	}

	decode, ok := decoderFor(ext)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := decode(content)
	if err != nil {
		return Definition{}, errors.Join(ErrFailedToParse, err)
	}
	if data == nil {
		return Definition{}, fmt.Errorf("%w: empty document", ErrFailedToParse)
	}

	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return Definition{}, err
	}
	if err := dec.Decode(data); err != nil {
		return Definition{}, errors.Join(ErrFailedToParse, err)
	}
	return def, nil
}

// Load reads and compiles a schema file. A definition without a name is named
// after the file, without its extension.
func Load(ctx context.Context, filename string, opts ...Option) (*Schema, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return parseNamed(ctx, content, filepath.Base(filename), opts)
}

func parseNamed(ctx context.Context, content []byte, base string, opts []Option) (*Schema, error) {
	ext := path.Ext(base)
	def, err := ParseDefinition(ctx, content, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", base, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(base, ext)
	}

	s, err := Compile(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", base, err)
	}
	return s, nil
}

// LoadDir compiles every .json, .yaml and .yml file directly inside dir.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFailedToReadDir, dir)
	}
	return LoadFS(ctx, os.DirFS(dir), ".", opts...)
}

// LoadFS compiles every schema file directly inside dir of fsys, e.g. an embed.FS.
func LoadFS(ctx context.Context, fsys fs.FS, dir string, opts ...Option) (*Set, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	set := NewSet()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() {
			continue
		}
		if _, ok := decoderFor(path.Ext(entry.Name())); !ok {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		s, err := parseNamed(ctx, content, entry.Name(), opts)
		if err != nil {
			return nil, err
		}
		if err := set.Add(s); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return set, nil
}

// Set is a collection of schemas addressed by name. It is read-only once loaded.
type Set struct {
	schemas map[string]*Schema
}

func NewSet(schemas ...*Schema) *Set {
	s := &Set{schemas: make(map[string]*Schema, len(schemas))}
	for _, sc := range schemas {
		s.schemas[sc.Name()] = sc
	}
	return s
}

// Add registers a schema under its name. Names are unique.
func (s *Set) Add(sc *Schema) error {
	if _, ok := s.schemas[sc.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, sc.Name())
	}
	s.schemas[sc.Name()] = sc
	return nil
}

func (s *Set) Get(name string) (*Schema, bool) {
	sc, ok := s.schemas[name]
	return sc, ok
}

// Names returns the schema names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) Len() int { return len(s.schemas) }
