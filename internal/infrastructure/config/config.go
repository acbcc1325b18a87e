package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, constructed once at startup
// and passed by reference to the services that need it.
type Config struct {
	Port     string `env:"PORT,       default=8000"`
	Env      string `env:"ENV,        default=development"`
	LogLevel string `env:"LOG_LEVEL,  default=info"`
	JSONLogs bool   `env:"JSON_LOGS,  default=false"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	SecretKey string `env:"SECRET_KEY, required"`
	// TokenTTLMinutes is the bearer token lifetime. 1440 = 24h.
	TokenTTLMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=1440"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mongo_tech"`
	// ConnectTimeout bounds connection establishment and per-operation
	// deadlines against a down store.
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=1s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
