package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is immutable after Load. Components receive it by reference at
// construction time; nothing reads the environment afterwards.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	DatabaseURL      string `env:"DATABASE_URL"`
	DatabasePath     string `env:"DATABASE_PATH" envDefault:"database.db"`
	MigrationsPath   string `env:"MIGRATIONS_PATH" envDefault:"db/migrations"`
	PgMigrationsPath string `env:"PG_MIGRATIONS_PATH" envDefault:"infra/migrations"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	TokenTTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`

	CursorSecret string `env:"CURSOR_SECRET_KEY" envDefault:"cursor-secret"`

	RedisAddr string `env:"REDIS_ADDR"`

	MetricsPort  string `env:"METRICS_PORT" envDefault:"9091"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()

	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
