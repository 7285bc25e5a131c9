package cli

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/server"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return run{code: code, stdout: out.String(), stderr: errOut.String()}
}

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestStats(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		r := execute(t, "1,2,3\n4,abc,5\n", "stats")
		require.Equal(t, 0, r.code, r.stderr)
		data := decode(t, r.stdout)
		stats := data["stats"].(map[string]interface{})
		assert.Equal(t, 5.0, stats["count"])
		assert.Equal(t, 3.0, stats["mean"])
		assert.Equal(t, 1.0, data["skipped_tokens"])
	})

	t.Run("line mode", func(t *testing.T) {
		r := execute(t, "10, 20, 30", "stats", "--line", "-")
		require.Equal(t, 0, r.code, r.stderr)
		assert.Equal(t, []interface{}{0.0, 0.5, 1.0}, decode(t, r.stdout)["processed_data"])
	})

	t.Run("no numbers exits 1", func(t *testing.T) {
		r := execute(t, "a,b,c", "stats")
		assert.Equal(t, 1, r.code)
		assert.Contains(t, r.stderr, "no valid numbers found in text")
		assert.Contains(t, r.stderr, "empty_input")
		assert.Empty(t, r.stdout)
	})

	t.Run("glob over compressed files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "one.csv"), []byte("1,2,3"), 0o644))

		var gz bytes.Buffer
		zw := gzip.NewWriter(&gz)
		_, err := zw.Write([]byte("10\n20\n"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "two.csv.gz"), gz.Bytes(), 0o644))

		r := execute(t, "", "stats", "--glob", filepath.Join(dir, "**", "*.csv*"))
		require.Equal(t, 0, r.code, r.stderr)

		var reports []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(r.stdout), &reports))
		require.Len(t, reports, 2)
		assert.Equal(t, filepath.Join(dir, "a", "one.csv"), reports[0]["source"])
		assert.Equal(t, 15.0, reports[1]["stats"].(map[string]interface{})["mean"])
	})

	t.Run("missing file", func(t *testing.T) {
		r := execute(t, "", "stats", filepath.Join(t.TempDir(), "nope.csv"))
		assert.Equal(t, 1, r.code)
		assert.Contains(t, r.stderr, "nope.csv")
	})
}

func TestSequences(t *testing.T) {
	r := execute(t, "", "fib", "10")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, 34.0, decode(t, r.stdout)["last_value"])

	r = execute(t, "", "primes", "20")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, []interface{}{2.0, 3.0, 5.0, 7.0, 11.0, 13.0, 17.0, 19.0}, decode(t, r.stdout)["primes"])

	r = execute(t, "", "fib", "ten")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "N must be an integer")
}

func TestMatrix(t *testing.T) {
	r := execute(t, "", "matrix", "demo")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, []interface{}{
		[]interface{}{58.0, 64.0},
		[]interface{}{139.0, 154.0},
	}, decode(t, r.stdout)["result"])

	r = execute(t, "", "matrix", "multiply", "--a", "[[1,2]]", "--b", "[[1,2]]")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "shape_mismatch")

	r = execute(t, "", "matrix", "multiply", "--a", "[[1,2]", "--b", "[[1]]")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "--a must be a JSON array of rows")
}

func TestPi(t *testing.T) {
	first := execute(t, "", "pi", "20000", "--seed", "7")
	second := execute(t, "", "pi", "20000", "--seed", "7")
	require.Equal(t, 0, first.code, first.stderr)

	a, b := decode(t, first.stdout), decode(t, second.stdout)
	assert.Equal(t, a["estimate"], b["estimate"])
	assert.InDelta(t, 3.1416, a["estimate"], 0.1)

	r := execute(t, "", "pi", "0")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "degenerate_iteration")
}

func TestFormats(t *testing.T) {
	r := execute(t, "", "fib", "3", "-f", "yaml")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "last_value: 1")

	r = execute(t, "", "fib", "3", "--format", "toml")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "last_value = 1")

	r = execute(t, "", "fib", "3", "--format", "xml")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unknown output format")

	r = execute(t, "", "fib", "3", "--log-level", "chatty")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid --log-level")
}

func TestRemote(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false
	srv, err := server.NewServer(cfg, server.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	defer func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	}()

	r := execute(t, "4,8", "--server", ts.URL, "stats")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, 6.0, decode(t, r.stdout)["stats"].(map[string]interface{})["mean"])

	r = execute(t, "", "--server", ts.URL, "pi", "0")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "degenerate_iteration")

	r = execute(t, "", "--server", ts.URL, "services")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "numeric.fibonacci")

	r = execute(t, "", "--server", ts.URL, "health")
	require.Equal(t, 0, r.code, r.stderr)
	health := decode(t, r.stdout)
	assert.Equal(t, "healthy", health["status"])
	assert.Contains(t, health, "uptime_seconds")
}

func TestHealth(t *testing.T) {
	r := execute(t, "", "health")
	require.Equal(t, 0, r.code, r.stderr)
	health := decode(t, r.stdout)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "local", health["mode"])
	assert.Equal(t, 1.0, health["service_registry"].(map[string]interface{})["total_services"])

	r = execute(t, "", "--server", "http://127.0.0.1:1", "health")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Error:")
}
