package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/config"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

func TestLoadService(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{
			"VALIDKIT_ADDR", "VALIDKIT_SCHEMA_DIR", "VALIDKIT_LOCALES_DIR", "VALIDKIT_DEFAULT_LANG",
			"VALIDKIT_LOG_LEVEL", "VALIDKIT_LOG_FORMAT", "VALIDKIT_PATTERN_CACHE_SIZE",
			"VALIDKIT_MAX_BODY_BYTES", "VALIDKIT_SHUTDOWN_TIMEOUT",
		} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
		s, err := config.LoadService()
		require.NoError(t, err)
		assert.Equal(t, config.Service{
			Addr:             ":8080",
			SchemaDir:        "schemas",
			DefaultLang:      "en",
			LogLevel:         "info",
			LogFormat:        "json",
			PatternCacheSize: 256,
			MaxBodyBytes:     1 << 20,
			ShutdownTimeout:  10 * time.Second,
		}, s)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("VALIDKIT_ADDR", "127.0.0.1:9000")
		t.Setenv("VALIDKIT_DEFAULT_LANG", "de")
		t.Setenv("VALIDKIT_LOG_FORMAT", "text")
		t.Setenv("VALIDKIT_SHUTDOWN_TIMEOUT", "1m")

		s, err := config.LoadService()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", s.Addr)
		assert.Equal(t, "de", s.DefaultLang)
		assert.Equal(t, "text", s.LogFormat)
		assert.Equal(t, time.Minute, s.ShutdownTimeout)
	})

	t.Run("unparsable value", func(t *testing.T) {
		t.Setenv("VALIDKIT_PATTERN_CACHE_SIZE", "many")
		_, err := config.LoadService()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("out of range values", func(t *testing.T) {
		t.Setenv("VALIDKIT_PATTERN_CACHE_SIZE", "0")
		t.Setenv("VALIDKIT_LOG_FORMAT", "xml")
		t.Setenv("VALIDKIT_DEFAULT_LANG", "German")

		_, err := config.LoadService()
		require.ErrorIs(t, err, config.ErrInvalidConfig)

		tree, ok := validator.AsTree(err)
		require.True(t, ok)
		assert.Equal(t, []string{"default_lang", "log_format", "pattern_cache_size"}, tree.Fields())
		assert.Equal(t, []string{"the number must be `>= 1`."}, tree.Get("pattern_cache_size"))
	})
}

func TestServiceValidate(t *testing.T) {
	t.Parallel()

	s := config.Service{
		Addr:             ":8080",
		SchemaDir:        "schemas",
		DefaultLang:      "pt-br",
		LogLevel:         "loud",
		LogFormat:        "json",
		PatternCacheSize: 16,
		MaxBodyBytes:     1024,
	}
	tree, ok := validator.AsTree(s.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{"log_level", "shutdown_timeout"}, tree.Fields())
	assert.Len(t, tree.Get("log_level"), 1)

	s.LogLevel = "debug"
	s.ShutdownTimeout = time.Second
	assert.NoError(t, s.Validate())
}
