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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, c.Server.Port)
	assert.Equal(t, "amazon/chronos-t5-small", c.Model.Name)
	assert.Equal(t, 10, c.Forecaster.SampleCount)
	assert.Equal(t, 1, c.Forecaster.MaxConcurrency)
	assert.Equal(t, 90*time.Second, c.Server.RequestTimeout)
	assert.True(t, c.Server.CORS)
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
forecaster:
  type: drift
  sample_count: 20
  max_concurrency: 4
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "drift", c.Forecaster.Type)
	assert.Equal(t, 20, c.Forecaster.SampleCount)
	assert.Equal(t, 4, c.Forecaster.MaxConcurrency)
	// untouched sections keep their defaults
	assert.Equal(t, 60*time.Second, c.Forecaster.Timeout)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("MODEL_NAME", "amazon/chronos-t5-base")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("FORECASTER_TYPE", "drift")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	c, err := LoadWithEnv("")
	require.NoError(t, err)

	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, "amazon/chronos-t5-base", c.Model.Name)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "drift", c.Forecaster.Type)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown forecaster", func(c *Config) { c.Forecaster.Type = "oracle" }},
		{"http without url", func(c *Config) { c.Forecaster.URL = "" }},
		{"zero samples", func(c *Config) { c.Forecaster.SampleCount = 0 }},
		{"zero concurrency", func(c *Config) { c.Forecaster.MaxConcurrency = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad ratelimit backend", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Backend = "memcached" }},
		{"collector without brokers", func(c *Config) { c.Logging.Collector.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load("")
			require.NoError(t, err)
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}
