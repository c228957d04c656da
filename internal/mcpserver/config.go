package mcpserver

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Pagination defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize int64

	// Validate tool defaults.
	ValidateStrict   bool
	ValidateWarnings bool

	// LogLevel is a zerolog level name; logs go to stderr.
	LogLevel string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from RECORDCHECK_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("RECORDCHECK_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("RECORDCHECK_CACHE_MAX_SIZE", 16),
		CacheTTL:           envDuration("RECORDCHECK_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("RECORDCHECK_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("RECORDCHECK_LIST_LIMIT", 100),
		MaxLimit:           envInt("RECORDCHECK_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("RECORDCHECK_MAX_INLINE_SIZE", 10*1024*1024)),
		ValidateStrict:     envBool("RECORDCHECK_VALIDATE_STRICT", false),
		ValidateWarnings:   envBool("RECORDCHECK_VALIDATE_WARNINGS", false),
		LogLevel:           envLevel("RECORDCHECK_LOG_LEVEL", "warn"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", fallback).Msg("invalid bool env var, using default")
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid int env var, using default")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Dur("default", fallback).Msg("invalid duration env var, using default")
		return fallback
	}
	return d
}

func envLevel(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if _, err := zerolog.ParseLevel(v); err != nil {
		log.Warn().Str("key", key).Str("value", v).Str("default", fallback).Msg("invalid log level env var, using default")
		return fallback
	}
	return v
}
