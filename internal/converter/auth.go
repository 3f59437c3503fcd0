package converter

import (
	dto "vaultory_backend/internal/api/dto/auth"
	"vaultory_backend/internal/model"
)

func ToTelegramLogin(req dto.TelegramLoginRequest) model.TelegramLogin {
	return model.TelegramLogin{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		PhotoURL:  req.PhotoURL,
		AuthDate:  req.AuthDate,
		Hash:      req.Hash,
	}
}

func ToUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		PhotoURL:    user.PhotoURL,
		Balance:     user.Balance,
		IsAdmin:     user.IsAdmin,
		CasesOpened: user.CasesOpened,
	}
}
