package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// refreshTokenBytes - длина случайной части refresh-токена
const refreshTokenBytes = 32

// GenerateRefreshToken выдает непрозрачный refresh-токен.
// Клиент получает его в cookie, в sessions хранится только хэш
func GenerateRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashRefreshToken - SHA-256 в hex, именно эта форма лежит в sessions
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyRefreshToken сверяет токен клиента с хэшом из сессии
func VerifyRefreshToken(raw string, storedHash string) bool {
	return subtle.ConstantTimeCompare(
		[]byte(HashRefreshToken(raw)),
		[]byte(storedHash),
	) == 1
}
