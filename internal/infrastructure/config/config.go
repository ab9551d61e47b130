package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

type Config struct {
	AppName  string `env:"APP_NAME,  default=FoodRescue API"`
	Version  string `env:"VERSION,   default=1.0.0"`
	Port     string `env:"PORT,      default=8001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret       string `env:"JWT_SECRET, default=your-secret-key-change-this-in-production"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM, default=HS256"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=30"`

	// Semicolon-delimited because origin lists carry commas poorly through
	// struct tag options.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, delimiter=;, default=http://localhost:5173;http://localhost:3000;http://127.0.0.1:5173"`

	StorageDriver string `env:"STORAGE_DRIVER, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
	Login LoginConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=foodrescue"`
}

// RedisConfig is read only when Addr is set; an empty Addr disables the
// login throttle entirely.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_WINDOW, default=15m"`
}

// TokenTTL returns the token expiry window as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.StorageDriver != DriverMemory && cfg.StorageDriver != DriverMongo {
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	// HS256 is the only supported signing algorithm
	if cfg.JWTAlgorithm != "HS256" {
		return nil, fmt.Errorf("config: unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}
	return &cfg, nil
}
