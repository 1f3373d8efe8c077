// Package config loads runtime configuration from REGISTRY_* environment variables.
//
// Nesting uses a double underscore: REGISTRY_DATABASE__DSN maps to database.dsn.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	platformstrings "samiti/pkg/platform/strings"
)

const (
	envPrefix = "REGISTRY_"

	// DevJWTSigningKey is used when no key is configured outside production.
	DevJWTSigningKey = "dev-secret-key-change-in-production"
)

// Config is the root configuration object for the service.
type Config struct {
	Env       string          `koanf:"env" validate:"oneof=local development test production"`
	LogLevel  string          `koanf:"log_level" validate:"oneof=debug info warn error"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Lockout   LockoutConfig   `koanf:"lockout"`
	Redis     RedisConfig     `koanf:"redis"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
	Otel      OtelConfig      `koanf:"otel"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CookieSecure    bool          `koanf:"cookie_secure"`
	AdminToken      string        `koanf:"admin_token"`
}

// DatabaseConfig selects the SQL driver and pool tuning.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"oneof=pgx postgres sqlite"`
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	MigrateOnStart  bool          `koanf:"migrate_on_start"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSigningKey string        `koanf:"jwt_signing_key" validate:"required"`
	JWTIssuer     string        `koanf:"jwt_issuer" validate:"required"`
	TokenTTL      time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

// LockoutConfig bounds consecutive failed logins per login id.
type LockoutConfig struct {
	MaxFailures int           `koanf:"max_failures" validate:"gte=1"`
	Window      time.Duration `koanf:"window" validate:"gt=0"`
}

// RedisConfig enables the Redis lockout store when URL is set.
type RedisConfig struct {
	URL         string        `koanf:"url"`
	PoolSize    int           `koanf:"pool_size" validate:"gte=0"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// KafkaConfig enables the Kafka audit publisher when Brokers is set.
type KafkaConfig struct {
	Brokers string `koanf:"brokers"`
	Topic   string `koanf:"topic"`
}

// Enabled reports whether any broker was configured.
func (c KafkaConfig) Enabled() bool { return len(c.BrokerList()) > 0 }

// BrokerList splits the comma-separated broker list, dropping blanks and repeats.
func (c KafkaConfig) BrokerList() []string {
	return platformstrings.SplitList(c.Brokers, ",")
}

// BootstrapConfig seeds the first STATE user so Register has a caller.
type BootstrapConfig struct {
	LoginID      string `koanf:"login_id"`
	Password     string `koanf:"password" validate:"required_with=LoginID"`
	MobileNumber string `koanf:"mobile_number" validate:"required_with=LoginID"`
	StateCode    string `koanf:"state_code" validate:"required_with=LoginID"`
	StateName    string `koanf:"state_name" validate:"required_with=LoginID"`
}

// Enabled reports whether a bootstrap login id was configured.
func (c BootstrapConfig) Enabled() bool { return c.LoginID != "" }

// OtelConfig enables tracing export when Endpoint is set.
type OtelConfig struct {
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads REGISTRY_* variables, applies development defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if cfg.IsProduction() && cfg.Auth.JWTSigningKey == DevJWTSigningKey {
		return nil, errors.New("validate config: auth.jwt_signing_key must be set in production")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "pgx"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "file:registry.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Auth.JWTSigningKey == "" && !c.IsProduction() {
		c.Auth.JWTSigningKey = DevJWTSigningKey
	}
	if c.Auth.JWTIssuer == "" {
		c.Auth.JWTIssuer = "samiti-registry"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Lockout.MaxFailures == 0 {
		c.Lockout.MaxFailures = 5
	}
	if c.Lockout.Window == 0 {
		c.Lockout.Window = 15 * time.Minute
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "registry.audit"
	}
	if c.Otel.ServiceName == "" {
		c.Otel.ServiceName = "samiti-registry"
	}
}
