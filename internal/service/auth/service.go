package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"vaultory_backend/internal/config"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"
)

var (
	ErrInvalidSignature = errors.New("invalid telegram signature")
	ErrLoginExpired     = errors.New("telegram login data expired")
	ErrInvalidPassword  = errors.New("invalid login or password")
	ErrNotAdmin         = errors.New("user is not an admin")
)

type serv struct {
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
	tgConfig  config.TelegramConfig
}

func NewAuthService(
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
	tgConfig config.TelegramConfig,
) service.AuthService {
	return &serv{
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
		tgConfig:  tgConfig,
	}
}

// generateSessionID - случайный идентификатор сессии (128 бит)
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
