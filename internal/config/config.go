package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type RateLimitBackend string

const (
	RateLimitBackendMemory RateLimitBackend = "memory" // Per-process token bucket (default)
	RateLimitBackendRedis  RateLimitBackend = "redis"  // Shared fixed window in Redis
)

type (
	Config struct {
		HTTP
		Global
		Database
		RateLimit
	}

	HTTP struct {
		Port         int32
		Host         string
		MaxBodyBytes int64 // Upper bound for JSON request bodies

		// Proxies allowed to set X-Forwarded-For. Empty means the client IP is
		// always the TCP peer address.
		TrustedProxies []string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Driver   string // "sqlite" or "postgres"
		Path     string // SQLite file path (":memory:" for an in-memory store)
		DSN      string // Postgres connection string
		LogLevel string // silent, error, warn, info
	}

	RateLimit struct {
		Enabled bool
		Backend RateLimitBackend

		// Memory backend
		RPS     float64
		Burst   int
		IdleTTL time.Duration

		// Redis backend
		RedisAddr     string
		RedisPassword string
		RedisPrefix   string
		Requests      int           // Allowed writes per window
		Window        time.Duration // Fixed window length
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_max_body_bytes", 1<<20) // 1 MiB
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("trusted_proxies", "")

	// Database defaults
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Rate limit defaults
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_backend", string(RateLimitBackendMemory))
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("rate_limit_idle_ttl", "15m")
	v.SetDefault("rate_limit_redis_addr", "")
	v.SetDefault("rate_limit_redis_password", "")
	v.SetDefault("rate_limit_redis_prefix", "library:ratelimit")
	v.SetDefault("rate_limit_requests", 60)
	v.SetDefault("rate_limit_window", "1m")

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			MaxBodyBytes:   v.GetInt64("HTTP_MAX_BODY_BYTES"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		RateLimit: RateLimit{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			Backend:       RateLimitBackend(v.GetString("RATE_LIMIT_BACKEND")),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			IdleTTL:       v.GetDuration("RATE_LIMIT_IDLE_TTL"),
			RedisAddr:     v.GetString("RATE_LIMIT_REDIS_ADDR"),
			RedisPassword: v.GetString("RATE_LIMIT_REDIS_PASSWORD"),
			RedisPrefix:   v.GetString("RATE_LIMIT_REDIS_PREFIX"),
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:        v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}
}

// splitList parses a comma or space separated list, dropping empty items.
func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
}
