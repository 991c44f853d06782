package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.gcg-eyewear.test/api")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://api.gcg-eyewear.test/api", cfg.APIBaseURL)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.ViewCacheTTL)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_MissingAPIBaseURL(t *testing.T) {
	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.gcg-eyewear.test/api")
	t.Setenv("STOREFRONT_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.gcg-eyewear.test/api")
	t.Setenv("TRACE_SAMPLE_RATE", "1.5")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRACE_SAMPLE_RATE")
}

func TestLoad_RedisEnablesCache(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.gcg-eyewear.test/api")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("VIEW_CACHE_TTL", "2m")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Minute, cfg.ViewCacheTTL)
}
