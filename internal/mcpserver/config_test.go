package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearRecordcheckEnv clears all RECORDCHECK_* env vars to isolate tests from the ambient environment.
func clearRecordcheckEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RECORDCHECK_CACHE_ENABLED", "RECORDCHECK_CACHE_MAX_SIZE",
		"RECORDCHECK_CACHE_TTL", "RECORDCHECK_CACHE_SWEEP_INTERVAL",
		"RECORDCHECK_LIST_LIMIT", "RECORDCHECK_MAX_LIMIT",
		"RECORDCHECK_MAX_INLINE_SIZE",
		"RECORDCHECK_VALIDATE_STRICT", "RECORDCHECK_VALIDATE_WARNINGS",
		"RECORDCHECK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// withConfig swaps the active configuration for the duration of a test.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	saved := *cfg
	mutate(cfg)
	t.Cleanup(func() { *cfg = saved })
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearRecordcheckEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 16, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.ValidateStrict)
	assert.False(t, c.ValidateWarnings)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearRecordcheckEnv(t)
	t.Setenv("RECORDCHECK_CACHE_ENABLED", "false")
	t.Setenv("RECORDCHECK_CACHE_MAX_SIZE", "50")
	t.Setenv("RECORDCHECK_CACHE_TTL", "30m")
	t.Setenv("RECORDCHECK_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("RECORDCHECK_LIST_LIMIT", "20")
	t.Setenv("RECORDCHECK_MAX_INLINE_SIZE", "1024")
	t.Setenv("RECORDCHECK_VALIDATE_STRICT", "true")
	t.Setenv("RECORDCHECK_VALIDATE_WARNINGS", "1")
	t.Setenv("RECORDCHECK_LOG_LEVEL", "debug")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.ValidateStrict)
	assert.True(t, c.ValidateWarnings)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearRecordcheckEnv(t)
	t.Setenv("RECORDCHECK_CACHE_ENABLED", "maybe")
	t.Setenv("RECORDCHECK_CACHE_MAX_SIZE", "-3")
	t.Setenv("RECORDCHECK_CACHE_TTL", "soon")
	t.Setenv("RECORDCHECK_LIST_LIMIT", "many")
	t.Setenv("RECORDCHECK_LOG_LEVEL", "loud")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 16, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, "warn", c.LogLevel)
}
