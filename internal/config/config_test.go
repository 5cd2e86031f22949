package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
log_level: debug
max_steps: 500
store:
  driver: redis
  redis_addr: cache:6379
  ttl: 10m
http:
  addr: ":9090"
`)

	t.Setenv("TURING_MAX_STEPS", "42")
	t.Setenv("TURING_STORE_REDIS_DB", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 42, cfg.MaxSteps, "env wins over file")
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, 10*time.Minute, cfg.Store.TTL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 256, cfg.Capacity, "unset keys keep defaults")
}

func TestLoad_TracingFromEnv(t *testing.T) {
	t.Setenv("TURING_TRACING_EXPORTER", "otlp")
	t.Setenv("TURING_TRACING_ENDPOINT", "http://collector:4318")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "otlp", cfg.Tracing.Exporter)
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)

	t.Setenv("TURING_TRACING_ENDPOINT", "")
	_, err = Load("")
	assert.ErrorContains(t, err, "tracing.endpoint is required")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "store:\n  driver: postgres\ncapacity: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown store driver "postgres"`)
	assert.ErrorContains(t, err, "capacity must be positive")

	_, err = Load(writeFile(t, "max_steps: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse")

	t.Setenv("TURING_MAX_STEPS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "parse env")
}
