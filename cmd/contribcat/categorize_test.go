package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	loadedSecrets = nil
	t.Cleanup(viper.Reset)
}

func TestAPIConfigReadsConfigFile(t *testing.T) {
	resetConfig(t)
	viper.Set("api.key", "test-key")
	viper.Set("api.model", "claude-test-model")
	viper.Set("api.base_delay", 2*time.Second)
	viper.Set("api.max_retries", 7)
	viper.Set("api.timeout", 45*time.Second)

	cfg, err := apiConfig(categorizeCmd)
	require.NoError(t, err)
	assert.Equal(t, "claude-test-model", cfg.Model)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 2*time.Second, cfg.BaseDelay)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestAPIConfigDefaults(t *testing.T) {
	resetConfig(t)
	viper.Set("api.key", "test-key")

	cfg, err := apiConfig(categorizeCmd)
	require.NoError(t, err)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Equal(t, defaultBaseDelay, cfg.BaseDelay)
	assert.Equal(t, defaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestAPIConfigRequiresKey(t *testing.T) {
	resetConfig(t)

	_, err := apiConfig(categorizeCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Anthropic API key")
}
