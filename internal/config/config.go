// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	DB DatabaseConfig

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"72h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	Redis     RedisConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	AMQPURL   string `env:"AMQP_URL"`
	AMQPQueue string `env:"AMQP_QUEUE" envDefault:"reservation.created"`
}

// DatabaseConfig selects and addresses the relational store.
type DatabaseConfig struct {
	Driver      string `env:"DB_DRIVER" envDefault:"postgres"`
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        string `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"campground_user"`
	Password    string `env:"DB_PASSWORD"`
	Name        string `env:"DB_NAME" envDefault:"campground_db"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"campground.db"`
	ApplySchema bool   `env:"DB_APPLY_SCHEMA" envDefault:"true"`
}

// RedisConfig addresses the redis instance backing the rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RateLimitConfig tunes the token bucket applied to every request.
type RateLimitConfig struct {
	Enabled        bool          `env:"ENABLED" envDefault:"false"`
	Capacity       int           `env:"CAPACITY" envDefault:"60"`
	RefillTokens   int           `env:"REFILL_TOKENS" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1s"`
	TTL            time.Duration `env:"TTL" envDefault:"10m"`
	Prefix         string        `env:"PREFIX" envDefault:"rl"`
	// KeyStrategy is one of ip, user, route, ip_user, ip_route, user_route.
	KeyStrategy string `env:"KEY_STRATEGY" envDefault:"ip_user"`
}

// Load reads a .env file when present and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.RateLimit.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case DriverPostgres, DriverSQLite:
		c.DB.Driver = strings.ToLower(c.DB.Driver)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (r *RateLimitConfig) normalize() {
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
}
