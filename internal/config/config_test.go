package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "actiond.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "actions.dispatch", cfg.NATS.Subject)
	assert.Equal(t, "actiond", cfg.NATS.Queue)
	assert.Equal(t, 10*time.Second, cfg.NATS.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Breaker.Enabled)
	assert.EqualValues(t, 5, cfg.Breaker.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Breaker.OpenTimeout)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "actiond", cfg.Tracing.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
nats:
  url: nats://bus:4222
  subject: device.actions
  timeout: 3s
logging:
  level: debug
  format: text
breaker:
  enabled: true
  max_failures: 2
  open_timeout: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nats://bus:4222", cfg.NATS.URL)
	assert.Equal(t, "device.actions", cfg.NATS.Subject)
	assert.Equal(t, "actiond", cfg.NATS.Queue)
	assert.Equal(t, 3*time.Second, cfg.NATS.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Breaker.Enabled)
	assert.EqualValues(t, 2, cfg.Breaker.MaxFailures)
	assert.Equal(t, time.Minute, cfg.Breaker.OpenTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "nats:\n  subject: from.file\n")
	t.Setenv("ACTIOND_NATS_SUBJECT", "from.env")
	t.Setenv("ACTIOND_LOGGING_LEVEL", "warn")
	t.Setenv("ACTIOND_TRACING_ENDPOINT", "http://collector:4318")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from.env", cfg.NATS.Subject)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)
}

func TestLoad_NoFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", "nats: [\n", "failed to read config"},
		{"zero timeout", "nats:\n  timeout: 0s\n", "nats.timeout"},
		{"breaker without threshold", "breaker:\n  enabled: true\n  max_failures: 0\n", "breaker.max_failures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
