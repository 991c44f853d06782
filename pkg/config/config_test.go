package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseURL  string `env:"TEST_BASE_URL" envDefault:"http://localhost:8000/api"`
	Port     int    `env:"TEST_PORT" envDefault:"8080"`
	LogLevel string `env:"TEST_LOG_LEVEL" envDefault:"info"`
	Tags     []int  `env:"TEST_TAGS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_BASE_URL", "https://api.gcg-eyewear.com/api")
	t.Setenv("TEST_PORT", "9000")

	var cfg testConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "https://api.gcg-eyewear.com/api", cfg.BaseURL)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
