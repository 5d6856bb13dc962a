package config

import (
	"os"
	"strconv"
	"time"
)

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// TrustProxyHeaders keys rate limiting on proxy headers instead of the
	// connection address.
	TrustProxyHeaders bool
}

type RateLimitConfig struct {
	Capacity int
	Refill   time.Duration
}

type Config struct {
	HTTP      HTTPConfig
	LogLevel  string
	LogFormat string

	// RedisURL selects the Redis quote cache. Empty uses the in-memory cache.
	RedisURL      string
	QuoteCacheTTL time.Duration

	RateLimit RateLimitConfig

	// ProgramDefaultsFile overrides the built-in program defaults.
	ProgramDefaultsFile string
}

func Load() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

			TrustProxyHeaders: getEnvBool("HTTP_TRUST_PROXY_HEADERS", false),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		RedisURL:      getEnv("REDIS_URL", ""),
		QuoteCacheTTL: getEnvDuration("QUOTE_CACHE_TTL", 10*time.Minute),
		RateLimit: RateLimitConfig{
			Capacity: getEnvInt("RATE_LIMIT_CAPACITY", 120),
			Refill:   getEnvDuration("RATE_LIMIT_REFILL", time.Minute),
		},
		ProgramDefaultsFile: getEnv("PROGRAM_DEFAULTS_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
