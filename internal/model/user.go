package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID          int
	TelegramID  int64
	Username    string
	FirstName   string
	PhotoURL    string
	Balance     int // Баланс в копейках
	IsAdmin     bool
	CasesOpened int
	TotalSpent  int
	CreatedAt   time.Time

	// Логин и хэш пароля заполнены только у админов,
	// обычные пользователи входят через Telegram
	Login        string
	PasswordHash string
}

type UserClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin,omitempty"`
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	User         *User
}

// TelegramLogin - данные виджета Telegram Login Widget.
// Hash подписан HMAC-SHA256 с ключом SHA256(bot_token)
type TelegramLogin struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}
