package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the rate-limit configuration for one endpoint pattern. A Path
// ending in "/" is a prefix match, which covers the {videoId} suffix on the
// progress and result routes.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int           // bucket capacity; defaults to Limit
}

// Config holds the limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// LoadConfig reads limiter settings from environment variables, falling
// back to the built-in endpoint tiers.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := defaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules: []Rule{
			// Submits hit the upstream transcript provider.
			{Path: "/transcribe", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
			{Path: "/transcribe/stream", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
			{Path: "/summarize", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
			{Path: "/summarize/stream", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
			// Metadata proxy also reaches upstream.
			{Path: "/video/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
			// Progress polls arrive once a second per active job.
			{Path: "/transcribe/progress/", Method: "GET", Limit: 600, Window: time.Minute},
			{Path: "/summarize/progress/", Method: "GET", Limit: 600, Window: time.Minute},
			{Path: "/transcribe/result/", Method: "GET", Limit: 120, Window: time.Minute},
			{Path: "/summarize/result/", Method: "GET", Limit: 120, Window: time.Minute},
		},
	}
}

// match resolves the rule for a request. The liveness check is unlimited.
func (c *Config) match(path, method string) Rule {
	if path == "/test" && method == "GET" {
		return Rule{Limit: 0}
	}

	for _, rule := range c.Rules {
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}

	return Rule{Limit: c.DefaultLimit, Window: c.DefaultWindow}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
