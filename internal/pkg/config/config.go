package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ErrMissingJWTSecret indicates JWT_SECRET was absent or blank. Login cannot
// be served without a signing secret, so Load refuses to return a config.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL         time.Duration `env:"TOKEN_TTL,            default=48h"`
	LoginMaxAttempts int64         `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	LoginWindow      time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
	AuditWorkers     int           `env:"AUDIT_WORKERS,        default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing signing secret is a startup-fatal configuration error.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}
