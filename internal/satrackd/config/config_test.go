package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wrale/wrale-analytics/internal/errors"
	"github.com/wrale/wrale-analytics/pkg/analytics/client"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, client.DefaultEndpoint, cfg.Tracking.Endpoint)
	assert.Equal(t, 60, cfg.RateLimit.Rate)
	assert.Nil(t, cfg.Tracking.StrictUTM)
}

func TestLoadHostnameFromEnv(t *testing.T) {
	t.Setenv("SIMPLE_ANALYTICS_HOSTNAME", "example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "example.com", cfg.Analytics().Hostname)

	t.Setenv("SATRACK_HOSTNAME", "relay.example.com")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "relay.example.com", cfg.Analytics().Hostname)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "satrackd.yaml", `
server:
  port: 9090
  readTimeout: 5s
tracking:
  hostname: example.com
  excludedPaths:
    - "^/admin/"
  strictUtm: false
  ignoreMetrics:
    viewportSize: true
proxy:
  upstream: http://127.0.0.1:3000
rateLimit:
  rate: 5
  period: 10s
  redisAddr: localhost:6379
`)
	t.Setenv("SATRACK_COLLECT_DNT", "true")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "defaults survive partial files")
	assert.Equal(t, []string{"^/admin/"}, cfg.Analytics().ExcludedPaths)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.Proxy.Upstream)
	assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)

	opts := cfg.TrackingOptions()
	assert.True(t, opts.CollectDNT)
	require.NotNil(t, opts.StrictUTM)
	assert.False(t, *opts.StrictUTM)
	assert.True(t, opts.IgnoreMetrics.ViewportSize)
	assert.False(t, opts.IgnoreMetrics.UTM)
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{name: "extension", file: "config.json", body: "{}"},
		{name: "port", file: "c.yaml", body: "server:\n  port: 70000\n"},
		{name: "tls pair", file: "c.yaml", body: "server:\n  tlsCert: cert.pem\n"},
		{name: "pattern", file: "c.yaml", body: "tracking:\n  excludedPaths: [\"(\"]\n"},
		{name: "upstream", file: "c.yaml", body: "proxy:\n  upstream: not-a-url\n"},
		{name: "log level", file: "c.yaml", body: "log:\n  level: loud\n"},
		{name: "yaml", file: "c.yaml", body: "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestValidationErrorsAreInvalidInput(t *testing.T) {
	cfg := Default()
	cfg.Tracking.Timeout = 0
	assert.True(t, apperrors.IsInvalidInput(cfg.validate()))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
