package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Images   ImageStoreConfig
	Admin    AdminConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/persoshop?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ImageStoreConfig struct {
	Endpoint  string `env:"IMAGE_STORE_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"IMAGE_STORE_ACCESS_KEY"`
	SecretKey string `env:"IMAGE_STORE_SECRET_KEY"`
	Bucket    string `env:"IMAGE_STORE_BUCKET,     default=persoshop"`
	UseSSL    bool   `env:"IMAGE_STORE_USE_SSL,    default=false"`
	// PublicBaseURL overrides the URL prefix of stored images, for
	// serving through a CDN. Empty means direct bucket URLs.
	PublicBaseURL string `env:"IMAGE_STORE_PUBLIC_URL"`
}

// AdminConfig drives the one-shot seed and password-reset tasks.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=lilia@persoshop.com"`
	Password string `env:"ADMIN_PASSWORD"`
	FullName string `env:"ADMIN_NAME,     default=Lilia"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
