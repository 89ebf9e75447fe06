// Package config loads the service configuration in layers: built-in
// defaults, an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	ConfigPathEnvVar  = "CONFIG_PATH"
	DefaultConfigPath = "config.yml"
	EnvPrefix         = "ANALYTICS_"
)

type Config struct {
	Service    ServiceConfig    `koanf:"service"`
	Database   DatabaseConfig   `koanf:"database"`
	Breaker    BreakerConfig    `koanf:"breaker"`
	Logging    LoggingConfig    `koanf:"logging"`
	Pagination PaginationConfig `koanf:"pagination"`
}

type ServiceConfig struct {
	Name            string        `koanf:"name" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Debug           bool          `koanf:"debug"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	// DSN wins over the individual connection fields when set.
	DSN string `koanf:"dsn"`

	Host     string `koanf:"host" validate:"required_without=DSN"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	User     string `koanf:"user" validate:"required_without=DSN"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_without=DSN"`
	SSLMode  string `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout" validate:"gt=0"`
}

type BreakerConfig struct {
	Name             string        `koanf:"name" validate:"required"`
	MaxRequests      uint32        `koanf:"max_requests" validate:"min=1"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
}

type LoggingConfig struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Format      string `koanf:"format" validate:"oneof=json console"`
	Development bool   `koanf:"development"`
}

type PaginationConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"min=1,ltefield=MaxLimit"`
	MaxLimit     int `koanf:"max_limit" validate:"min=1"`
}

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:            "blog-analytics-service",
			Port:            8080,
			Debug:           false,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "blog_analytics",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
			QueryTimeout:    30 * time.Second,
		},
		Breaker: BreakerConfig{
			Name:             "analytics-db",
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Pagination: PaginationConfig{
			DefaultLimit: 100,
			MaxLimit:     1000,
		},
	}
}

// Load builds the configuration. Precedence, lowest first: defaults, the
// YAML file named by CONFIG_PATH (default config.yml, skipped when absent),
// .env files, the process environment. POSTGRES_DSN is honoured when no
// ANALYTICS_DATABASE__DSN is given.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := configPath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" && k.String("database.dsn") == "" {
		if err := k.Set("database.dsn", dsn); err != nil {
			return nil, fmt.Errorf("failed to set database.dsn: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func configPath() string {
	p := os.Getenv(ConfigPathEnvVar)
	if p == "" {
		p = DefaultConfigPath
	}
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// envKey maps ANALYTICS_DATABASE__MAX_OPEN_CONNS to database.max_open_conns.
func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// ConnString returns the DSN, building a postgres URL from the individual
// fields when none is configured.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr is the listen address of the HTTP server.
func (s ServiceConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}
