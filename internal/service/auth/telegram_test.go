package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"vaultory_backend/internal/model"
)

const testBotToken = "123456:test-bot-token"

// signLogin подписывает данные виджета так, как это делает Telegram
func signLogin(botToken, checkString string) string {
	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyTelegramHash(t *testing.T) {
	login := model.TelegramLogin{
		ID:        42,
		FirstName: "Ivan",
		Username:  "ivan",
		AuthDate:  1700000000,
	}

	// Поля сортируются по имени и склеиваются через \n
	checkString := "auth_date=1700000000\nfirst_name=Ivan\nid=42\nusername=ivan"
	login.Hash = signLogin(testBotToken, checkString)

	assert.True(t, verifyTelegramHash(login, testBotToken))
}

func TestVerifyTelegramHashOmitsEmptyFields(t *testing.T) {
	login := model.TelegramLogin{
		ID:       42,
		AuthDate: 1700000000,
	}

	checkString := "auth_date=1700000000\nid=42"
	login.Hash = signLogin(testBotToken, checkString)

	assert.True(t, verifyTelegramHash(login, testBotToken))
}

func TestVerifyTelegramHashRejectsTampering(t *testing.T) {
	login := model.TelegramLogin{
		ID:        42,
		FirstName: "Ivan",
		AuthDate:  1700000000,
	}

	checkString := "auth_date=1700000000\nfirst_name=Ivan\nid=42"
	login.Hash = signLogin(testBotToken, checkString)

	// Подмена поля после подписи
	login.FirstName = "Mallory"
	assert.False(t, verifyTelegramHash(login, testBotToken))
}

func TestVerifyTelegramHashRejectsWrongToken(t *testing.T) {
	login := model.TelegramLogin{
		ID:       42,
		AuthDate: 1700000000,
	}

	checkString := "auth_date=1700000000\nid=42"
	login.Hash = signLogin("999999:other-token", checkString)

	assert.False(t, verifyTelegramHash(login, testBotToken))
}

func TestVerifyTelegramHashRejectsEmptyHash(t *testing.T) {
	login := model.TelegramLogin{ID: 42, AuthDate: 1700000000}
	assert.False(t, verifyTelegramHash(login, testBotToken))
}
