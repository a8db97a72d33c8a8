package config

import (
	"errors"
	"time"

	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

// Service is the configuration of the validkit server and command line tool.
type Service struct {
	Addr             string        `env:"VALIDKIT_ADDR" envDefault:":8080"`
	SchemaDir        string        `env:"VALIDKIT_SCHEMA_DIR" envDefault:"schemas"`
	LocalesDir       string        `env:"VALIDKIT_LOCALES_DIR"`
	DefaultLang      string        `env:"VALIDKIT_DEFAULT_LANG" envDefault:"en"`
	LogLevel         string        `env:"VALIDKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"VALIDKIT_LOG_FORMAT" envDefault:"json"`
	PatternCacheSize int           `env:"VALIDKIT_PATTERN_CACHE_SIZE" envDefault:"256"`
	MaxBodyBytes     int64         `env:"VALIDKIT_MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout  time.Duration `env:"VALIDKIT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var langPattern = validator.MustPattern(`^[a-z]{2,3}(-[a-z0-9]{2,8})*$`)

// Validate checks value ranges. The error is a *validator.Tree keyed by
// field name.
func (s Service) Validate() error {
	errs := validator.NewObjectErrors()
	errs.Add("addr", validator.Check(s.Addr, validator.MinLength[string](1))...)
	errs.Add("schema_dir", validator.Check(s.SchemaDir, validator.MinLength[string](1))...)
	errs.Add("default_lang", validator.Check(s.DefaultLang, validator.Pattern[string](langPattern))...)
	errs.Add("log_level", validator.Check(s.LogLevel, validator.Custom(func(v string) error {
		_, err := logger.ParseLevel(v)
		return err
	}))...)
	errs.Add("log_format", validator.Check(s.LogFormat, validator.Enumerate("json", "text"))...)
	errs.Add("pattern_cache_size", validator.Check(s.PatternCacheSize, validator.Minimum(1))...)
	errs.Add("max_body_bytes", validator.Check(s.MaxBodyBytes, validator.Minimum[int64](1))...)
	errs.Add("shutdown_timeout", validator.Check(s.ShutdownTimeout, validator.ExclusiveMinimum[time.Duration](0))...)
	return errs.Err()
}

// LoadService parses and validates the service configuration. It is not
// cached, so flags and tests can change the environment between calls.
func LoadService() (Service, error) {
	var s Service
	if err := Parse(&s); err != nil {
		return Service{}, err
	}
	if err := s.Validate(); err != nil {
		return Service{}, errors.Join(ErrInvalidConfig, err)
	}
	return s, nil
}
