package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/i18n"
	"github.com/dmitrymomot/validkit/pkg/schema"
	"github.com/dmitrymomot/validkit/pkg/server"
)

const orderSchema = `name: order
description: A customer order
fields:
  - name: quantity
    rules:
      - minimum: 1
  - name: tags
    shape: [sequence]
    rules:
      - max_length: 3
`

func newSchemas(t *testing.T) *schema.Set {
	t.Helper()
	set, err := schema.LoadFS(context.Background(), fstest.MapFS{
		"order.yaml": {Data: []byte(orderSchema)},
	}, ".")
	require.NoError(t, err)
	return set
}

func newServer(t *testing.T, withTranslator bool, opts ...server.Option) *server.Server {
	t.Helper()
	var tr *i18n.Translator
	if withTranslator {
		var err error
		tr, err = i18n.Default(context.Background())
		require.NoError(t, err)
	}
	srv, err := server.New(newSchemas(t), tr, opts...)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := server.New(nil, nil)
	assert.ErrorIs(t, err, server.ErrNoSchemas)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newServer(t, false).Handler()

	rec := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	empty, err := server.New(schema.NewSet(), nil)
	require.NoError(t, err)
	rec = do(t, empty.Handler(), http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, rec.Body.String())
}

func TestSchemas(t *testing.T) {
	t.Parallel()
	h := newServer(t, true).Handler()

	rec := do(t, h, http.MethodGet, "/v1/schemas", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"schemas":[{"name":"order","description":"A customer order","fields":["quantity","tags"]}]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/schemas/order", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var def schema.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	assert.Equal(t, "order", def.Name)
	assert.Len(t, def.Fields, 2)

	rec = do(t, h, http.MethodGet, "/v1/schemas/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"schema not found"}`, rec.Body.String())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	h := newServer(t, true, server.WithMaxBodySize(256)).Handler()
	const invalid = `{"quantity": 0, "tags": ["ok", "long"]}`

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/v1/schemas/order/validate", "application/json", `{"quantity": 2, "tags": ["a"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "{\"valid\":true}\n", rec.Body.String())
	})

	t.Run("invalid document keeps order and characters", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/v1/schemas/order/validate", "application/json", invalid)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "en", rec.Header().Get("Content-Language"))
		assert.Equal(t,
			"{\"valid\":false,\"errors\":{\"quantity\":[\"the number must be `>= 1`.\"],\"tags\":[{\"1\":[\"the length of the value must be `<= 3`.\"]}]}}\n",
			rec.Body.String())
	})

	t.Run("language from query", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/v1/schemas/order/validate?lang=de", "application/json", invalid)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "de", rec.Header().Get("Content-Language"))
		assert.JSONEq(t,
			"{\"valid\":false,\"errors\":{\"quantity\":[\"die Zahl muss `>= 1` sein.\"],\"tags\":[{\"1\":[\"die Länge des Werts muss `<= 3` sein.\"]}]}}",
			rec.Body.String())
	})

	t.Run("language from header with yaml body", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodPost, "/v1/schemas/order/validate", "application/yaml", "quantity: 0\n",
			"Accept-Language", "de-AT,de;q=0.9,en;q=0.5")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, "{\"valid\":false,\"errors\":{\"quantity\":[\"die Zahl muss `>= 1` sein.\"]}}", rec.Body.String())
	})

	t.Run("request errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name        string
			target      string
			contentType string
			body        string
			status      int
		}{
			{"unknown schema", "/v1/schemas/nope/validate", "application/json", `{}`, http.StatusNotFound},
			{"missing content type", "/v1/schemas/order/validate", "", `{}`, http.StatusUnsupportedMediaType},
			{"unsupported content type", "/v1/schemas/order/validate", "text/plain", `{}`, http.StatusUnsupportedMediaType},
			{"malformed json", "/v1/schemas/order/validate", "application/json", `{"quantity": `, http.StatusBadRequest},
			{"not an object", "/v1/schemas/order/validate", "application/json", `[1, 2]`, http.StatusBadRequest},
			{"too large", "/v1/schemas/order/validate", "application/json", `{"tags": ["` + strings.Repeat("x", 300) + `"]}`, http.StatusRequestEntityTooLarge},
		}
		for _, tt := range tests {
			rec := do(t, h, http.MethodPost, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code, tt.name)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), tt.name)
			assert.NotEmpty(t, resp["error"], tt.name)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := do(t, h, http.MethodGet, "/v1/schemas/order/validate", "", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestValidateWithoutTranslator(t *testing.T) {
	t.Parallel()
	h := newServer(t, false).Handler()

	rec := do(t, h, http.MethodPost, "/v1/schemas/order/validate?lang=de", "application/json", `{"quantity": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, "{\"valid\":false,\"errors\":{\"quantity\":[\"the number must be `>= 1`.\"]}}", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/locales", "", "")
	assert.JSONEq(t, `{"languages":[],"default":"en"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/locales/en", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocales(t *testing.T) {
	t.Parallel()
	h := newServer(t, true).Handler()

	rec := do(t, h, http.MethodGet, "/v1/locales", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"languages":["de","en"],"default":"en"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/locales/de", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var templates map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	assert.Equal(t, "Wert", templates["value"])
	assert.Contains(t, rec.Body.String(), "`>= %{limit}`")

	rec = do(t, h, http.MethodGet, "/v1/locales/xx", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func waitForListener(t *testing.T, srv *server.Server, configured string) string {
	t.Helper()
	for i := 0; i < 100; i++ {
		if addr := srv.Addr(); addr != configured {
			return addr
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Fail(t, "server did not start listening")
	return ""
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()
	const configured = "127.0.0.1:0"
	srv := newServer(t, false, server.WithAddr(configured), server.WithShutdownTimeout(time.Second))
	assert.NoError(t, srv.Shutdown(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	addr := waitForListener(t, srv, configured)
	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.ErrorIs(t, srv.Run(ctx), server.ErrStart)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestRunAddressInUse(t *testing.T) {
	t.Parallel()
	const configured = "127.0.0.1:0"
	first := newServer(t, false, server.WithAddr(configured))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- first.Run(ctx) }()
	addr := waitForListener(t, first, configured)

	second := newServer(t, false, server.WithAddr(addr))
	assert.ErrorIs(t, second.Run(context.Background()), server.ErrStart)

	cancel()
	require.NoError(t, <-done)
}
