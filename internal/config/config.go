package config

import (
	"time"
)

// Config is the root application configuration shared by all binaries.
// Each binary checks the sections it depends on with Require.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Services  ServicesConfig  `yaml:"services"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Bot       BotConfig       `yaml:"bot"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
	ConnectAttempts uint64        `yaml:"connect_attempts"   env:"DATABASE_CONNECT_ATTEMPTS"   env-default:"5"`
}

// AuthConfig holds token settings. Both services must share JWTSecret.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"todolist"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the token endpoints.
type RateLimitConfig struct {
	TokenPerMinute  int           `yaml:"token_per_minute" env:"RATE_LIMIT_TOKEN_PER_MINUTE" env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LifecycleConfig holds the reconciler schedule. Read once at start.
// Intervals are seconds or Go durations.
type LifecycleConfig struct {
	CompletedEnabled  bool     `yaml:"completed_enabled"  env:"TIME_COMPLETED_TASK"          env-default:"true"`
	CompletedInterval Interval `yaml:"completed_interval" env:"TIME_COMPLETED_TASK_INTERVAL" env-default:"60"`
	OverdueEnabled    bool     `yaml:"overdue_enabled"    env:"TIME_DUE_TASK"                env-default:"true"`
	OverdueInterval   Interval `yaml:"overdue_interval"   env:"TIME_DUE_TASK_INTERVAL"       env-default:"60"`
}

// ServicesConfig holds the addresses of peer services and the system
// identity used for service-to-service calls.
type ServicesConfig struct {
	TasksURL       string        `yaml:"tasks_url"       env:"TASKS_SERVICE_URL"       env-default:"http://localhost:8080/api"`
	CommentsURL    string        `yaml:"comments_url"    env:"COMMENTS_SERVICE_URL"    env-default:"http://localhost:8081"`
	Username       string        `yaml:"username"        env:"API_USERNAME_TODO"`
	Password       string        `yaml:"password"        env:"API_PASSWORD_TODO"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVICES_REQUEST_TIMEOUT" env-default:"5s"`
}

// RedisConfig holds the cache connection. An empty URL selects the
// in-process cache.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// CacheConfig holds comment service cache lifetimes.
type CacheConfig struct {
	ResponseTTL  time.Duration `yaml:"response_ttl"  env:"CACHE_RESPONSE_TTL"  env-default:"60s"`
	ExistenceTTL time.Duration `yaml:"existence_ttl" env:"CACHE_EXISTENCE_TTL" env-default:"10s"`
	KeyPrefix    string        `yaml:"key_prefix"    env:"CACHE_KEY_PREFIX"    env-default:"comments"`
}

// BotConfig holds conversational client settings.
type BotConfig struct {
	ChatID         int64  `yaml:"chat_id"         env:"BOT_CHAT_ID"         env-default:"1"`
	PasswordPrefix string `yaml:"password_prefix" env:"BOT_PASSWORD_PREFIX" env-default:"todo_Telegram_"`
	Locale         string `yaml:"locale"          env:"BOT_LOCALE"`
}
