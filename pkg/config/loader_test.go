package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/config"
)

type testConfigDefault struct {
	Name    string `env:"TEST_NAME_DEFAULT" envDefault:"default_value"`
	Depth   int    `env:"TEST_DEPTH_DEFAULT" envDefault:"42"`
	Verbose bool   `env:"TEST_VERBOSE_DEFAULT" envDefault:"true"`
}

type testConfigSingleton struct {
	Name string `env:"TEST_NAME_SINGLETON" envDefault:"default_value"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type envFileConfig struct {
	Addr    string        `env:"VALIDKIT_TEST_ADDR"`
	Langs   []string      `env:"VALIDKIT_TEST_LANGS" envSeparator:","`
	Timeout time.Duration `env:"VALIDKIT_TEST_TIMEOUT"`
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_NAME_DEFAULT")
	os.Unsetenv("TEST_DEPTH_DEFAULT")
	os.Unsetenv("TEST_VERBOSE_DEFAULT")

	var cfg testConfigDefault
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default_value", cfg.Name)
	assert.Equal(t, 42, cfg.Depth)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("TEST_NAME_SINGLETON", "first_value")

	var first testConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_NAME_SINGLETON", "second_value")

	var second testConfigSingleton
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.Name)

	var parsed testConfigSingleton
	require.NoError(t, config.Parse(&parsed))
	assert.Equal(t, "second_value", parsed.Name)
}

func TestLoad_MissingRequiredCanBeRetried(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_REQUIRED_VALUE", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfigDefault
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	for _, key := range []string{"VALIDKIT_TEST_ADDR", "VALIDKIT_TEST_LANGS", "VALIDKIT_TEST_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"en", "de"}, cfg.Langs)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}
