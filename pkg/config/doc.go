// Package config loads configuration from environment variables into
// structs, using github.com/caarlos0/env/v11 for parsing and
// github.com/joho/godotenv for .env files.
//
// Load parses each configuration type once and caches the result for the
// lifetime of the process; Parse skips the cache. LoadEnv reads extra dotenv
// files and ResetCache forgets cached values, which is handy in tests.
//
// # Usage
//
//	type Limits struct {
//		MaxDepth int `env:"MAX_DEPTH" envDefault:"32"`
//	}
//
//	var limits Limits
//	if err := config.Load(&limits); err != nil {
//		return err
//	}
//
// # Service configuration
//
// Service holds the settings of the validkit server and command line tool:
//
//	VALIDKIT_ADDR                listen address (":8080")
//	VALIDKIT_SCHEMA_DIR          directory of schema files ("schemas")
//	VALIDKIT_LOCALES_DIR         extra message catalogs (unset: built-in only)
//	VALIDKIT_DEFAULT_LANG        fallback message language ("en")
//	VALIDKIT_LOG_LEVEL           debug, info, warn or error ("info")
//	VALIDKIT_LOG_FORMAT          json or text ("json")
//	VALIDKIT_PATTERN_CACHE_SIZE  compiled pattern cache entries (256)
//	VALIDKIT_MAX_BODY_BYTES      request body limit (1048576)
//	VALIDKIT_SHUTDOWN_TIMEOUT    graceful shutdown timeout ("10s")
//
// LoadService parses and validates them; out of range values are reported
// as a validation tree joined with ErrInvalidConfig.
//
// # Error Handling
//
//   - ErrParsingConfig: the environment does not parse into the struct
//   - ErrNilPointer: a nil pointer was passed
//   - ErrLoadingEnvFile: a dotenv file could not be read
//   - ErrInvalidConfig: parsed values are out of range
package config
