package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// persistence gateway
	GatewayBackend string `toml:"gateway_backend"`
	ProfileBackend string `toml:"profile_backend"`
	SQLitePath     string `toml:"sqlite_path"`
	// state layer
	DevUserID              string   `toml:"dev_user_id"`
	ResultsCacheSizeBytes  int      `toml:"results_cache_size_bytes"`
	RateLimitPerMinute     int      `toml:"rate_limit_per_minute"`
	MaxRequestBodyBytes    int64    `toml:"max_request_body_bytes"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	SessionCleanupInterval string   `toml:"session_cleanup_interval"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// tracing
	HoneycombEnabled bool `toml:"honeycomb_enabled"`

	// secrets, from the environment only
	PostgresPassword string `toml:"-"`
	RedisPassword    string `toml:"-"`
	SentryDSN        string `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the env section of the TOML file at path, fills in defaults
// and secrets, and validates the result. A .env file next to the binary is
// loaded first, if present.
func Load(env, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("config: no .env file loaded: %s", err)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return t.Resolve(env)
}

// Resolve is Load for an already decoded file.
func (t *Toml) Resolve(env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.applyDefaults(env)
	cfg.PostgresPassword = os.Getenv("WORKOUTCAL_POSTGRES_PASS")
	cfg.RedisPassword = os.Getenv("WORKOUTCAL_REDIS_PASS")
	cfg.SentryDSN = os.Getenv("SENTRY_DSN")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.GatewayBackend == "" {
		c.GatewayBackend = BackendPostgres
	}
	if c.ProfileBackend == "" {
		c.ProfileBackend = c.GatewayBackend
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "./workoutcal.db"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
	if c.MaxRequestBodyBytes == 0 {
		c.MaxRequestBodyBytes = 1 << 20
	}
	if c.SessionCleanupInterval == "" {
		c.SessionCleanupInterval = "1h"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

func (c *Config) Validate() error {
	var errs []string
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d", c.Port))
	}
	switch c.GatewayBackend {
	case BackendPostgres, BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("invalid gateway backend: %q", c.GatewayBackend))
	}
	switch c.ProfileBackend {
	case BackendPostgres, BackendSQLite, BackendRedis:
	default:
		errs = append(errs, fmt.Sprintf("invalid profile backend: %q", c.ProfileBackend))
	}
	if c.ProfileBackend != BackendRedis && c.ProfileBackend != c.GatewayBackend {
		errs = append(errs, "profile backend must be redis or the same as the gateway backend")
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, "rate limit per minute must not be negative")
	}
	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
