package env

import (
	"fmt"
	"time"

	"vaultory_backend/internal/config"

	"github.com/kelseyhightower/envconfig"
)

type telegramConfig struct {
	Token       string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminChat   int64         `envconfig:"TELEGRAM_ADMIN_CHAT_ID" required:"true"`
	LoginMaxAge time.Duration `envconfig:"TELEGRAM_LOGIN_TTL" default:"24h"`
}

func NewTelegramConfig() (config.TelegramConfig, error) {
	var cfg telegramConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process telegram config: %w", err)
	}

	return &cfg, nil
}

func (cfg *telegramConfig) BotToken() string {
	return cfg.Token
}

func (cfg *telegramConfig) AdminChatID() int64 {
	return cfg.AdminChat
}

func (cfg *telegramConfig) LoginTTL() time.Duration {
	return cfg.LoginMaxAge
}
