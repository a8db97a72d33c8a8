package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/validkit/pkg/config"
	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

// Version information - set by build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// app is the state shared by all commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg       config.Service
	logLevel  string
	logFormat string
	log       *slog.Logger
	patterns  *validator.PatternCache
}

// NewRootCommand builds the command tree writing to out and errOut and
// reading documents named "-" from in.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "validkit",
		Short: "Validate JSON and YAML documents against declarative schemas",
		Long: `Validate JSON and YAML documents against declarative schemas.

Schemas list fields with JSON-Schema style rules (minimum, pattern,
unique_items, ...). Failures are reported as an error tree that mirrors
the document, in text, JSON or YAML.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides VALIDKIT_LOG_LEVEL")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (json|text), overrides VALIDKIT_LOG_FORMAT")

	root.AddCommand(
		newCheckCommand(a),
		newLintCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)
	return root
}

// setup loads the service configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var cfg config.Service
	if err := config.Parse(&cfg); err != nil {
		return errors.Join(ErrUsage, err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return errors.Join(ErrUsage, config.ErrInvalidConfig, err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	patterns, err := validator.NewPatternCache(cfg.PatternCacheSize)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	a.cfg = cfg
	a.patterns = patterns
	a.log = logger.New(
		logger.WithOutput(a.errOut),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithService(cmd.Root().Name(), Version),
	)
	return nil
}

// Execute runs the command line and returns the process exit code.
// Errors other than failed validation are printed to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand(in, out, errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrInvalid) {
		if !errors.Is(err, ErrUsage) && !errors.Is(err, ErrLoad) {
			// unknown commands and argument count errors come from cobra itself
			err = errors.Join(ErrUsage, err)
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return ExitCode(err)
}
