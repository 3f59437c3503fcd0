package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"vaultory_backend/internal/model"
	"vaultory_backend/pkg/token"
)

// TelegramLogin проверяет подпись данных виджета Telegram Login,
// создает (или обновляет) пользователя и открывает сессию
func (s *serv) TelegramLogin(ctx context.Context, login model.TelegramLogin) (*model.AuthData, error) {
	// 1. Проверка подписи
	if !verifyTelegramHash(login, s.tgConfig.BotToken()) {
		return nil, ErrInvalidSignature
	}

	// 2. Свежесть auth_date: старые данные виджета не принимаем
	authTime := time.Unix(login.AuthDate, 0)
	if time.Since(authTime) > s.tgConfig.LoginTTL() {
		return nil, ErrLoginExpired
	}

	// 3. Создать или обновить профиль
	username := login.Username
	if username == "" {
		username = login.FirstName
	}
	user, err := s.userRepo.UpsertTelegramUser(ctx, &model.User{
		TelegramID: login.ID,
		Username:   username,
		FirstName:  login.FirstName,
		PhotoURL:   login.PhotoURL,
	})
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// openSession - общий хвост входа: сессия + пара токенов
func (s *serv) openSession(ctx context.Context, user *model.User) (*model.AuthData, error) {
	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		User:         user,
	}, nil
}

// verifyTelegramHash сверяет hash виджета.
// data-check-string - все поля кроме hash, отсортированные по имени
// и склеенные через \n; ключ подписи - SHA256(bot_token)
func verifyTelegramHash(login model.TelegramLogin, botToken string) bool {
	if login.Hash == "" {
		return false
	}

	fields := map[string]string{
		"id":        strconv.FormatInt(login.ID, 10),
		"auth_date": strconv.FormatInt(login.AuthDate, 10),
	}
	if login.FirstName != "" {
		fields["first_name"] = login.FirstName
	}
	if login.LastName != "" {
		fields["last_name"] = login.LastName
	}
	if login.Username != "" {
		fields["username"] = login.Username
	}
	if login.PhotoURL != "" {
		fields["photo_url"] = login.PhotoURL
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, fields[k]))
	}
	checkString := strings.Join(pairs, "\n")

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))

	return hmac.Equal([]byte(hex.EncodeToString(mac.Sum(nil))), []byte(strings.ToLower(login.Hash)))
}
