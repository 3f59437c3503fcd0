package env

import (
	"fmt"

	"vaultory_backend/internal/config"

	"github.com/kelseyhightower/envconfig"
)

type pgConfig struct {
	PgDSN string `envconfig:"PG_DSN" required:"true"`
}

func NewPGConfig() (config.PGConfig, error) {
	var cfg pgConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process pg config: %w", err)
	}

	return &cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.PgDSN
}
