package app

import (
	"github.com/stakecast/stakecast/app/database"
	"github.com/stakecast/stakecast/app/market"
	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/cache"
	"github.com/stakecast/stakecast/internal/conf"
)

type Config struct {
	DB       database.Config
	Market   market.Config
	Registry registry.Config

	AppHost string `env:"APP_HOST" env-default:"localhost"`
	AppPort string `env:"APP_PORT" env-default:"8080"`
	Env     string `env:"APP_ENV" env-default:"development"`

	// TokenSymmetricKey must be exactly 32 bytes.
	TokenSymmetricKey string `env:"TOKEN_SYMMETRIC_KEY" validate:"required,len=32"`

	CacheBackend  string `env:"CACHE_BACKEND" env-default:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
}

// RedisOptions builds cache options from the redis settings.
func (c *Config) RedisOptions() *cache.RedisOptions {
	return &cache.RedisOptions{
		Addr:      c.RedisAddr,
		Password:  c.RedisPassword,
		DB:        c.RedisDB,
		KeyPrefix: "stakecast",
	}
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := conf.NewLoader().Load(c)
	return c, err
}
