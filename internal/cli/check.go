package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/validkit/pkg/binder"
	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/schema"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

type checkOptions struct {
	schema string
	lang   string
	format string
}

// documentResult is the outcome of validating one document.
type documentResult struct {
	Document string          `json:"document" yaml:"document"`
	Valid    bool            `json:"valid" yaml:"valid"`
	Errors   *validator.Tree `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check --schema <file|name> <document>...",
		Short: "Validate documents against a schema",
		Long: `Validate JSON or YAML documents against a schema.

The schema is a schema file, or the name of a schema in the schema
directory (VALIDKIT_SCHEMA_DIR). A document named "-" is read from
standard input as YAML, which also accepts JSON.

Exit codes: 0 when every document is valid, 1 when at least one is
invalid, 2 when a schema or document cannot be loaded.`,
		Example: `  # Validate two orders:
  validkit check --schema schemas/order.yaml orders/1.json orders/2.yaml

  # German messages, JSON output for CI:
  validkit check --schema order --lang de --format json order.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Schema file or schema name (required)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "Message language (default: the schema's own messages)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format (text|json|yaml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) runCheck(ctx context.Context, opts *checkOptions, docs []string) error {
	printer, err := newPrinter(a.out, opts.format)
	if err != nil {
		return err
	}

	s, err := a.loadSchema(ctx, opts.schema)
	if err != nil {
		return err
	}

	var format validator.MessageFunc
	if opts.lang != "" {
		tr, err := a.translator(ctx)
		if err != nil {
			return err
		}
		format = tr.Formatter(opts.lang)
	}

	results := make([]documentResult, 0, len(docs))
	for _, name := range docs {
		res, err := a.checkDocument(s, name, format)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if err := printer.print(results); err != nil {
		return err
	}
	for _, res := range results {
		if !res.Valid {
			return ErrInvalid
		}
	}
	return nil
}

func (a *app) checkDocument(s *schema.Schema, name string, format validator.MessageFunc) (documentResult, error) {
	start := time.Now()
	doc, err := a.readDocument(name)
	if err != nil {
		return documentResult{}, err
	}

	if format != nil {
		err = s.ValidateWith(doc, format)
	} else {
		err = s.Validate(doc)
	}
	a.log.Debug("document validated",
		logger.Schema(s.Name()),
		logger.Document(name),
		logger.Failures(err),
		logger.Duration(time.Since(start)),
	)

	if err == nil {
		return documentResult{Document: name, Valid: true}, nil
	}
	if tree, ok := validator.AsTree(err); ok {
		return documentResult{Document: name, Errors: tree}, nil
	}
	return documentResult{}, fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
}

// readDocument decodes a document file by extension. "-" reads YAML (or
// JSON) from standard input.
func (a *app) readDocument(name string) (any, error) {
	var (
		content []byte
		err     error
		ext     = strings.ToLower(filepath.Ext(name))
	)
	if name == "-" {
		content, err = io.ReadAll(a.in)
		ext = ".yaml"
	} else {
		content, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var doc any
	switch ext {
	case ".json":
		err = binder.DecodeJSON(bytes.NewReader(content), &doc)
	case ".yaml", ".yml":
		err = binder.DecodeYAML(bytes.NewReader(content), &doc)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported document extension %q", ErrUsage, name, ext)
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, fmt.Errorf("%s: %w", name, err))
	}
	return doc, nil
}
