package env

import (
	"fmt"
	"time"

	"vaultory_backend/internal/config"

	"github.com/kelseyhightower/envconfig"
)

type jwtConfig struct {
	SecretKey  string        `envconfig:"ACCESS_TOKEN" required:"true"`
	AccessTTL  time.Duration `envconfig:"ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTTL time.Duration `envconfig:"REFRESH_TOKEN_DURATION" default:"720h"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	var cfg jwtConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process jwt config: %w", err)
	}

	return &cfg, nil
}

func (cfg *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(cfg.SecretKey)
}

func (cfg *jwtConfig) AccessTokenDuration() time.Duration {
	return cfg.AccessTTL
}

func (cfg *jwtConfig) RefreshTokenDuration() time.Duration {
	return cfg.RefreshTTL
}
