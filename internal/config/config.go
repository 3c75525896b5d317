package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost    string `toml:"postgres_host"`
	PostgresPort    string `toml:"postgres_port"`
	PostgresUser    string `toml:"postgres_user"`
	PostgresDBName  string `toml:"postgres_db_name"`
	RunMigrations   bool   `toml:"run_migrations"`
	UseMemoryStore  bool   `toml:"use_memory_store"`
	DocCacheSizeMB  int    `toml:"doc_cache_size_mb"`
	DocCacheTTLSecs int    `toml:"doc_cache_ttl_seconds"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// sessions
	SessionTTLHours        int    `toml:"session_ttl_hours"`
	SessionCleanupSchedule string `toml:"session_cleanup_schedule"`
	// ai
	GeminiBaseURL       string `toml:"gemini_base_url"`
	GeminiModel         string `toml:"gemini_model"`
	GeminiTimeoutSecs   int    `toml:"gemini_timeout_seconds"`
	AuthRateLimitPerMin int    `toml:"auth_rate_limit_per_minute"`
	AIRateLimitPerMin   int    `toml:"ai_rate_limit_per_minute"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) DocCacheTTL() time.Duration {
	if c.DocCacheTTLSecs <= 0 {
		return time.Minute
	}
	return time.Duration(c.DocCacheTTLSecs) * time.Second
}

func (c *Config) GeminiTimeout() time.Duration {
	if c.GeminiTimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.GeminiTimeoutSecs) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env [%s] not configured", env)
	}
	return cfg, nil
}

// Load reads the TOML config file and returns the section for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)

	return cfg, nil
}

// LoadDotEnv loads secrets from a .env file into the process env.
// A missing file is not an error, variables already set are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

type Secrets struct {
	GeminiAPIKey     string
	RedisPassword    string
	PostgresPassword string
	SentryDSN        string
	HoneycombEnabled bool
	HoneycombAPIKey  string
}

func ReadSecrets() Secrets {
	return Secrets{
		GeminiAPIKey:     os.Getenv("DIARY_GEMINI_API_KEY"),
		RedisPassword:    os.Getenv("DIARY_REDIS_PASS"),
		PostgresPassword: os.Getenv("DIARY_POSTGRES_PASS"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		HoneycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
		HoneycombAPIKey:  os.Getenv("HONEYCOMB_API_KEY"),
	}
}
