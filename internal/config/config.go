package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type TelegramConfig interface {
	BotToken() string
	AdminChatID() int64
	// Максимальный возраст auth_date в данных виджета
	LoginTTL() time.Duration
}

// RouletteConfig - тайминги и геометрия рулетки.
// Значения читаются из config.yaml
type RouletteConfig interface {
	BaseCount() int
	SpinCount() int
	// Ширина одного слота ленты в логических пикселях
	ItemWidth() float64
	// Ширина области просмотра (маркер стоит в её центре)
	ViewportWidth() float64
	SpinDelay() time.Duration
	SettleDuration() time.Duration
	RevealDelay() time.Duration
	// Сколько висит pending-открытие до принудительного keep
	PendingTTL() time.Duration
}
