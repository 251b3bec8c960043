package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Admin AdminConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Issuer     string        `env:"JWT_ISSUER, default=http://localhost:8080"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=5m"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=60m"`
}

// AdminConfig seeds the bootstrap admin account.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@example.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
