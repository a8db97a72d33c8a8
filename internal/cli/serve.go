package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/schema"
	"github.com/dmitrymomot/validkit/pkg/server"
)

type serveOptions struct {
	addr       string
	schemaDir  string
	localesDir string
}

func newServeCommand(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API over HTTP",
		Long: `Load every schema of the schema directory and serve the validation API.
Flags override the VALIDKIT_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (VALIDKIT_ADDR)")
	cmd.Flags().StringVar(&opts.schemaDir, "schema-dir", "", "Schema directory (VALIDKIT_SCHEMA_DIR)")
	cmd.Flags().StringVar(&opts.localesDir, "locales-dir", "", "Extra message catalogs (VALIDKIT_LOCALES_DIR)")
	return cmd
}

func (a *app) runServe(ctx context.Context, opts *serveOptions) error {
	if opts.addr != "" {
		a.cfg.Addr = opts.addr
	}
	if opts.schemaDir != "" {
		a.cfg.SchemaDir = opts.schemaDir
	}
	if opts.localesDir != "" {
		a.cfg.LocalesDir = opts.localesDir
	}

	schemas, err := schema.LoadDir(ctx, a.cfg.SchemaDir, a.schemaOptions()...)
	if err != nil {
		a.log.ErrorContext(ctx, "failed to load schemas", logger.Error(err))
		return errors.Join(ErrLoad, err)
	}
	a.log.InfoContext(ctx, "schemas loaded", "dir", a.cfg.SchemaDir, "count", schemas.Len())

	tr, err := a.translator(ctx)
	if err != nil {
		a.log.ErrorContext(ctx, "failed to load message catalogs", logger.Error(err))
		return err
	}

	srv, err := server.NewFromConfig(a.cfg, schemas, tr, server.WithLogger(a.log))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}
	return srv.Run(ctx)
}
