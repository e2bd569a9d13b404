package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MATHGEN_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "output", cfg.ProgressDir())
	assert.Equal(t, BackendFile, cfg.Progress.Backend)
	assert.Equal(t, "mathgen:progress:", cfg.Progress.RedisPrefix)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 2048, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-9)
	assert.False(t, cfg.Generation.Concurrent)
	assert.False(t, cfg.Generation.ParallelGrades)
	assert.False(t, cfg.Tracing.Enabled)
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mathgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeYAML(t, `
output_dir: /tmp/worksheets
progress:
  backend: sqlite
  dir: /tmp/progress
server:
  port: 9090
  shutdown_timeout: 3s
generation:
  concurrent: true
  max_tokens: 1024
`)
	t.Setenv("MATHGEN_SERVER_PORT", "7070")
	t.Setenv("MATHGEN_TRACING_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/worksheets", cfg.OutputDir)
	assert.Equal(t, "/tmp/progress", cfg.ProgressDir())
	assert.Equal(t, BackendSQLite, cfg.Progress.Backend)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Generation.Concurrent)
	assert.Equal(t, 1024, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-9)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeYAML(t, "output_dir: from-env-file\n")
	t.Setenv("MATHGEN_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.OutputDir)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("MATHGEN_CONFIG", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeYAML(t, "server: [not, a, map]"))
	require.Error(t, err)

	t.Setenv("MATHGEN_PROGRESS_BACKEND", "redis")
	_, err = Load("")
	require.ErrorContains(t, err, "MATHGEN_REDIS_URL is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad backend", func(c *Config) { c.Progress.Backend = "s3" }, `progress backend must be file, sqlite or redis, got "s3"`},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server port out of range: 0"},
		{"bad tokens", func(c *Config) { c.Generation.MaxTokens = 0 }, "max_tokens must be positive"},
		{"bad temperature", func(c *Config) { c.Generation.Temperature = 3 }, "temperature must be within [0, 2], got 3"},
		{"empty output", func(c *Config) { c.OutputDir = "" }, "output_dir must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.EqualError(t, cfg.Validate(), tt.want)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MATHGEN_TEST_INT", "nope")
	t.Setenv("MATHGEN_TEST_BOOL", "1")
	t.Setenv("MATHGEN_TEST_DURATION", "90s")

	assert.Equal(t, 4, envInt("MATHGEN_TEST_INT", 4))
	assert.True(t, envBool("MATHGEN_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, envDuration("MATHGEN_TEST_DURATION", time.Second))
	assert.Equal(t, "x", envStr("MATHGEN_TEST_UNSET", "x"))
}
