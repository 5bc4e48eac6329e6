package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type JWTConfig struct {
	SecurityKey       string `env:"JWT_SECURITY_KEY"`
	Issuer            string `env:"JWT_ISSUER,   default=restaurant-api"`
	Audience          string `env:"JWT_AUDIENCE, default=restaurant-api-clients"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES, default=60"`
}

type IdentityConfig struct {
	MinPasswordLength  int  `env:"MIN_PASSWORD_LENGTH, default=6"`
	RequireUniqueEmail bool `env:"REQUIRE_UNIQUE_EMAIL, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=restaurant_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
