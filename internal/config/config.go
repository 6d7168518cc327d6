package config

import (
	"time"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Store     StoreConfig     `yaml:"store"`
	Export    ExportConfig    `yaml:"export"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds connection settings for the remote PostgreSQL store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits. Zero RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"   env-default:"600"`
	Burst             int `yaml:"burst"               env:"RATE_LIMIT_BURST" env-default:"50"`
}

// StoreConfig holds mirror settings.
type StoreConfig struct {
	RemoteTimeout time.Duration `yaml:"remote_timeout" env:"STORE_REMOTE_TIMEOUT" env-default:"5s"`
	LoadAttempts  int           `yaml:"load_attempts"  env:"STORE_LOAD_ATTEMPTS"  env-default:"3"`
	LoadBackoff   time.Duration `yaml:"load_backoff"   env:"STORE_LOAD_BACKOFF"   env-default:"2s"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Layout            string        `yaml:"layout"             env:"EXPORT_LAYOUT"             env-default:"per_topic"`
	ChartWidth        int           `yaml:"chart_width"        env:"EXPORT_CHART_WIDTH"        env-default:"600"`
	ChartHeight       int           `yaml:"chart_height"       env:"EXPORT_CHART_HEIGHT"       env-default:"400"`
	RenderTimeout     time.Duration `yaml:"render_timeout"     env:"EXPORT_RENDER_TIMEOUT"     env-default:"10s"`
	RenderConcurrency int           `yaml:"render_concurrency" env:"EXPORT_RENDER_CONCURRENCY" env-default:"4"`
	FilenamePrefix    string        `yaml:"filename_prefix"    env:"EXPORT_FILENAME_PREFIX"    env-default:"chart-data"`
}

// DefaultLayout returns the configured layout as a domain value.
func (c ExportConfig) DefaultLayout() domain.ExportLayout {
	return domain.ExportLayout(c.Layout)
}
