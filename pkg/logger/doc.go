// Package logger provides a context-aware wrapper around Go's slog package
// with functional options and helper attribute constructors.
//
// New builds a slog.TextHandler or slog.JSONHandler depending on the Format
// and wraps it with ContextHandler, which runs registered
// ContextExtractor callbacks for every record. The validation engine itself
// never logs; the server and the command line tool do.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithService("validkit", version),
//	)
//
//	log.InfoContext(ctx, "document validated",
//	    logger.Schema("order"),
//	    logger.Document("orders/42.yaml"),
//	    logger.Failures(err),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Configuration
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter select the output format.
//   - WithLevel / WithLevelName set the minimum level. ParseLevel and
//     ParseFormat check configuration values up front.
//   - WithAttr / WithService attach static attributes.
//   - WithContextExtractors / WithContextValue inject attributes from context.
//   - WithDevelopment switches to text output at debug level.
//
// Error returns an empty attribute for a nil error, so
//
//	log.Info("schemas loaded", logger.Error(err))
//
// needs no nil check.
package logger
