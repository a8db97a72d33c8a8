package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/logger"
	"github.com/dmitrymomot/validkit/pkg/validator"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestFailures(t *testing.T) {
	t.Parallel()

	errs := validator.NewObjectErrors()
	errs.AddMessage("name", "required")
	errs.AddMessage("name", "too short")
	items := validator.NewArrayErrors()
	items.AddMessage(3, "bad")
	errs.Add("items", validator.Issue{Tree: items.Tree()})

	attr := logger.Failures(errs.Err())
	assert.Equal(t, "failures", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())

	assert.Equal(t, int64(0), logger.Failures(nil).Value.Int64())
	assert.Equal(t, int64(0), logger.Failures(errors.New("io")).Value.Int64())
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Schema("order"), "schema", "order"},
		{logger.Document("a.yaml"), "document", "a.yaml"},
		{logger.Language("de"), "lang", "de"},
		{logger.Component("server"), "component", "server"},
		{logger.Duration(time.Second), "duration", time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.Any())
	}
}
