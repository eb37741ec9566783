package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int      `env:"TEST_LOADER_PORT" envDefault:"8080"`
	Symbol  string   `env:"TEST_LOADER_SYMBOL" envDefault:"₹"`
	Brokers []string `env:"TEST_LOADER_BROKERS" envDefault:"a:9092,b:9092" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "₹", cfg.Symbol)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "9000")
	t.Setenv("TEST_LOADER_SYMBOL", "$")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "$", cfg.Symbol)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "not-a-number")

	var cfg testConfig
	assert.Error(t, Load(&cfg))
}

type validatedConfig struct {
	Port int `env:"TEST_LOADER_VPORT" envDefault:"8080"`
}

func (c *validatedConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return assert.AnError
	}
	return nil
}

func TestLoad_RunsValidate(t *testing.T) {
	var cfg validatedConfig
	require.NoError(t, Load(&cfg))

	t.Setenv("TEST_LOADER_VPORT", "70000")
	assert.ErrorIs(t, Load(&cfg), assert.AnError)
}
