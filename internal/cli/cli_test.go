package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validkit/internal/cli"
)

const itemSchema = "testdata/schemas/item.yaml"

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cli.Execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestCheckText(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		res := run(t, "", "check", "--schema", itemSchema, "testdata/docs/valid.json")
		assert.Equal(t, cli.ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "testdata/docs/valid.json: valid\n", res.stdout)
	})

	t.Run("invalid document", func(t *testing.T) {
		res := run(t, "", "check", "-s", itemSchema, "testdata/docs/valid.json", "testdata/docs/invalid.yaml")
		assert.Equal(t, cli.ExitInvalid, res.code)
		assert.Equal(t, "testdata/docs/valid.json: valid\n"+
			"testdata/docs/invalid.yaml: invalid\n"+
			"  title: the length of the value must be `>= 2`.\n"+
			"  quantity: the number must be `>= 1`.\n"+
			"  tags[1]: the length of the value must be `<= 5`.\n",
			res.stdout)
		assert.Empty(t, res.stderr)
	})

	t.Run("german messages", func(t *testing.T) {
		res := run(t, "", "check", "-s", itemSchema, "--lang", "de", "testdata/docs/invalid.yaml")
		assert.Equal(t, cli.ExitInvalid, res.code)
		assert.Contains(t, res.stdout, "  quantity: die Zahl muss `>= 1` sein.\n")
	})

	t.Run("standard input", func(t *testing.T) {
		res := run(t, `{"title": "ok", "quantity": 0, "tags": []}`, "check", "-s", itemSchema, "-")
		assert.Equal(t, cli.ExitInvalid, res.code)
		assert.Equal(t, "-: invalid\n  quantity: the number must be `>= 1`.\n", res.stdout)
	})
}

func TestCheckStructuredOutput(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		res := run(t, "", "check", "-s", itemSchema, "-o", "json", "testdata/docs/valid.json", "testdata/docs/invalid.yaml")
		require.Equal(t, cli.ExitInvalid, res.code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		require.Len(t, got, 2)
		assert.Equal(t, map[string]any{"document": "testdata/docs/valid.json", "valid": true}, got[0])
		assert.Equal(t, false, got[1]["valid"])
		assert.Equal(t, map[string]any{
			"title":    []any{"the length of the value must be `>= 2`."},
			"quantity": []any{"the number must be `>= 1`."},
			"tags":     []any{map[string]any{"1": []any{"the length of the value must be `<= 5`."}}},
		}, got[1]["errors"])
	})

	t.Run("yaml", func(t *testing.T) {
		res := run(t, "", "check", "-s", itemSchema, "-o", "yaml", "testdata/docs/invalid.yaml")
		require.Equal(t, cli.ExitInvalid, res.code)

		var got []struct {
			Document string         `yaml:"document"`
			Valid    bool           `yaml:"valid"`
			Errors   map[string]any `yaml:"errors"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
		require.Len(t, got, 1)
		assert.False(t, got[0].Valid)
		assert.Equal(t, []any{"the number must be `>= 1`."}, got[0].Errors["quantity"])
	})
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing schema flag", []string{"check", "testdata/docs/valid.json"}, "required flag"},
		{"no documents", []string{"check", "-s", itemSchema}, "Error:"},
		{"missing schema file", []string{"check", "-s", "testdata/schemas/nope.yaml", "testdata/docs/valid.json"}, "load error"},
		{"broken schema", []string{"check", "-s", "testdata/broken/bad.yaml", "testdata/docs/valid.json"}, "load error"},
		{"malformed document", []string{"check", "-s", itemSchema, "testdata/docs/malformed.json"}, "malformed.json"},
		{"unsupported document", []string{"check", "-s", itemSchema, "testdata/docs/notes.txt"}, "unsupported document extension"},
		{"missing document", []string{"check", "-s", itemSchema, "testdata/docs/nope.json"}, "load error"},
		{"bad output format", []string{"check", "-s", itemSchema, "-o", "xml", "testdata/docs/valid.json"}, "invalid output format"},
		{"unknown flag", []string{"check", "--bogus"}, "usage error"},
		{"unknown command", []string{"frobnicate"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			assert.Equal(t, cli.ExitError, res.code)
			assert.Contains(t, res.stderr, tt.stderr)
			assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
		})
	}
}

func TestCheckSchemaByName(t *testing.T) {
	t.Setenv("VALIDKIT_SCHEMA_DIR", "testdata/schemas")

	res := run(t, "", "check", "-s", "item", "testdata/docs/valid.json")
	assert.Equal(t, cli.ExitSuccess, res.code, res.stderr)

	res = run(t, "", "check", "-s", "order", "testdata/docs/valid.json")
	assert.Equal(t, cli.ExitError, res.code)
	assert.Contains(t, res.stderr, `schema "order" not found`)
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("VALIDKIT_LOG_FORMAT", "xml")

	res := run(t, "", "version")
	assert.Equal(t, cli.ExitError, res.code)
	assert.Contains(t, res.stderr, "usage error")

	res = run(t, "", "--log-format", "text", "version")
	assert.Equal(t, cli.ExitSuccess, res.code, res.stderr)
}

func TestLint(t *testing.T) {
	t.Run("valid schemas", func(t *testing.T) {
		res := run(t, "", "lint", itemSchema, "testdata/schemas")
		assert.Equal(t, cli.ExitSuccess, res.code, res.stderr)
		assert.Equal(t, itemSchema+": ok\ntestdata/schemas: ok (1 schemas)\n", res.stdout)
	})

	t.Run("definition errors", func(t *testing.T) {
		res := run(t, "", "lint", itemSchema, "testdata/broken/bad.yaml", "testdata/broken")
		assert.Equal(t, cli.ExitInvalid, res.code)
		lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, itemSchema+": ok", lines[0])
		assert.Contains(t, lines[1], "bad.yaml")
		assert.True(t, strings.HasPrefix(lines[2], "testdata/broken: "))
	})

	t.Run("missing path", func(t *testing.T) {
		res := run(t, "", "lint", "testdata/none")
		assert.Equal(t, cli.ExitInvalid, res.code)
		assert.Contains(t, res.stdout, "testdata/none: ")
	})
}

func TestVersion(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		res := run(t, "", "version")
		assert.Equal(t, cli.ExitSuccess, res.code)
		assert.Equal(t, "validkit version dev\n  Commit: unknown\n  Built:  unknown\n", res.stdout)
	})

	t.Run("json", func(t *testing.T) {
		res := run(t, "", "version", "-o", "json")
		require.Equal(t, cli.ExitSuccess, res.code)

		var got map[string]string
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, map[string]string{"version": "dev", "commit": "unknown", "build_date": "unknown"}, got)
	})
}

func TestServeLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/bad.yaml", []byte("fields:\n  - name: a\n    shape: [bag]\n"), 0o600))

	res := run(t, "", "serve", "--schema-dir", dir, "--addr", "127.0.0.1:0")
	assert.Equal(t, cli.ExitError, res.code)
	assert.Contains(t, res.stderr, "load error")
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitInvalid, cli.ExitCode(cli.ErrInvalid))
	assert.Equal(t, cli.ExitError, cli.ExitCode(cli.ErrLoad))
	assert.Equal(t, cli.ExitError, cli.ExitCode(cli.ErrUsage))
}
