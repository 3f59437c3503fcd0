package env

import (
	"fmt"

	"vaultory_backend/internal/config"

	"github.com/kelseyhightower/envconfig"
)

type redisConfig struct {
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

func NewRedisConfig() (config.RedisConfig, error) {
	var cfg redisConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process redis config: %w", err)
	}

	return &cfg, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.RedisAddr
}

func (cfg *redisConfig) Password() string {
	return cfg.RedisPassword
}

func (cfg *redisConfig) DB() int {
	return cfg.RedisDB
}
