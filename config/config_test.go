package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_Defaults(t *testing.T) {
	cfg := AppConfig{}
	cfg.Sanitize()

	assert.Equal(t, 60*time.Second, cfg.Cache.StatsTTL)
	assert.Equal(t, 30*time.Second, cfg.Apify.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Webhooks.Timeout)
	assert.Equal(t, 0, cfg.Webhooks.RetryLimit)
}

func TestSanitize_ClampsNegativeValues(t *testing.T) {
	cfg := AppConfig{}
	cfg.Cache.StatsTTL = -time.Second
	cfg.Apify.Timeout = -time.Second
	cfg.Webhooks.Timeout = -time.Second
	cfg.Webhooks.RetryLimit = -5
	cfg.Sanitize()

	assert.Equal(t, 60*time.Second, cfg.Cache.StatsTTL)
	assert.Equal(t, 30*time.Second, cfg.Apify.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Webhooks.Timeout)
	assert.Equal(t, 0, cfg.Webhooks.RetryLimit)
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}

func TestApifyConfigured(t *testing.T) {
	cfg := ApifyConfig{}
	assert.False(t, cfg.Configured())
	cfg.Token = "apify_api_abc"
	assert.True(t, cfg.Configured())
}
