package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// CatalogAdapter loads message catalogs from some storage.
type CatalogAdapter interface {
	Load(ctx context.Context) (Catalog, error)
}

//go:embed locales/*.yaml
var builtinLocales embed.FS

// BuiltinAdapter returns the adapter for the catalogs shipped with the package
// (English and German).
func BuiltinAdapter() *FSAdapter {
	return NewFSAdapter(NewYAMLParser(), builtinLocales, "locales")
}

// MapAdapter uses an in-memory catalog.
type MapAdapter struct {
	Data Catalog
}

func (a *MapAdapter) Load(_ context.Context) (Catalog, error) {
	if a.Data == nil {
		return make(Catalog), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single catalog file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns nil if parser is nil or path is empty.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil || path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingFileCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: catalog file %q is empty", ErrInvalidCatalog, a.path)
	}

	catalog, err := a.parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return catalog, nil
}

// FSAdapter loads and merges every supported file directly inside dir of a
// file system, such as an embed.FS or os.DirFS.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter returns nil if parser or fsys is nil or dir is empty.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if parser == nil || fsys == nil || dir == "" {
		return nil
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// NewDirectoryAdapter loads catalogs from a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string) *FSAdapter {
	if dir == "" {
		return nil
	}
	return NewFSAdapter(parser, os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(Catalog)
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		catalog, err := a.parser.Parse(ctx, string(content))
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
		}
		all.merge(catalog)
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w in %q", ErrNoCatalogFiles, a.dir)
	}
	return all, nil
}
