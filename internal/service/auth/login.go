package auth

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/pkg/pass"
)

// AdminLogin - вход по логину и паролю, доступен только админам
func (s *serv) AdminLogin(ctx context.Context, login, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidPassword
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}

	if !user.IsAdmin {
		return nil, ErrNotAdmin
	}

	return s.openSession(ctx, user)
}
