package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type MongoCfg struct {
	URI         string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	Database    string `env:"MONGODB_DATABASE" envDefault:"custdb"`
	MaxPoolSize int    `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
}

type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type ServerCfg struct {
	Port   int    `env:"PORT" envDefault:"4000"`
	APIKey string `env:"API_KEY" envDefault:""`
}

type Config struct {
	MongoCfg  MongoCfg
	RedisCfg  RedisCfg
	ServerCfg ServerCfg
}

func Build() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}
