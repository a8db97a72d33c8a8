package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

type slug string

func TestPattern(t *testing.T) {
	t.Parallel()
	t.Run("matches anywhere unless anchored", func(t *testing.T) {
		rule := validator.Pattern[string](validator.MustPattern(`[0-9]+`))
		assert.Nil(t, rule.Check("abc123"))
		assert.NotNil(t, rule.Check("abc"))

		anchored := validator.Pattern[string](validator.MustPattern(`^[0-9]+$`))
		assert.NotNil(t, anchored.Check("abc123"))
		assert.Nil(t, anchored.Check("123"))
	})

	t.Run("failure carries only the pattern source", func(t *testing.T) {
		f := validator.Pattern[string](validator.MustPattern(`^\d{3}$`)).Check("secret")
		require.NotNil(t, f)
		assert.Equal(t, validator.KindPattern, f.Kind())
		assert.Equal(t, map[string]any{"pattern": `^\d{3}$`}, f.Params())
		assert.Equal(t, `the value must match the pattern of "^\d{3}$".`, f.DefaultMessage())
		assert.NotContains(t, f.DefaultMessage(), "secret")
	})

	t.Run("named string types", func(t *testing.T) {
		rule := validator.Pattern[slug](validator.MustPattern(`^[a-z-]+$`))
		assert.Nil(t, rule.Check(slug("hello-world")))
		assert.NotNil(t, rule.Check(slug("Hello World")))
	})

	t.Run("nil expression panics", func(t *testing.T) {
		assert.Panics(t, func() { validator.Pattern[string](nil) })
	})
}

func TestPatternBytes(t *testing.T) {
	t.Parallel()
	rule := validator.PatternBytes[[]byte](validator.MustPattern(`^/usr/`))

	assert.Nil(t, rule.Check([]byte("/usr/bin/env")))
	assert.NotNil(t, rule.Check([]byte("/etc/passwd")))

	t.Run("invalid UTF-8 is matched without panicking", func(t *testing.T) {
		assert.NotPanics(t, func() {
			assert.Nil(t, rule.Check([]byte{'/', 'u', 's', 'r', '/', 0xff, 0xfe}))
			assert.NotNil(t, rule.Check([]byte{0xff, 0xfe}))
		})
	})
}

func TestLength(t *testing.T) {
	t.Parallel()
	t.Run("min length", func(t *testing.T) {
		rule := validator.MinLength[string](3)
		assert.Nil(t, rule.Check("abc"))
		assert.NotNil(t, rule.Check("ab"))
		assert.Equal(t, "the length of the value must be `>= 3`.", rule.Check("").DefaultMessage())
	})

	t.Run("max length", func(t *testing.T) {
		rule := validator.MaxLength[string](5)
		assert.Nil(t, rule.Check("hello"))
		assert.NotNil(t, rule.Check("hello!"))
	})

	t.Run("counts user-perceived characters", func(t *testing.T) {
		rule := validator.MaxLength[string](2)
		assert.Nil(t, rule.Check("🇩🇪🇫🇷"))
		assert.Nil(t, rule.Check("ét"))
		assert.NotNil(t, validator.MinLength[string](2).Check("👍🏽"))
	})
}
