package converter

import (
	dto "vaultory_backend/internal/api/dto/inventory"
	"vaultory_backend/internal/model"
)

func ToInventoryResponses(items []model.InventoryItem) []dto.ItemResponse {
	result := make([]dto.ItemResponse, len(items))
	for i, item := range items {
		result[i] = dto.ItemResponse{
			ID:        item.ID,
			Name:      item.Name,
			Rarity:    string(item.Rarity),
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Source:    item.Source,
			Withdrawn: item.Withdrawn,
			CreatedAt: item.CreatedAt,
		}
	}
	return result
}

func ToWithdrawalResponse(req *model.WithdrawalRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:              req.ID,
		InventoryItemID: req.InventoryItemID,
		Contact:         req.Contact,
		Status:          req.Status,
		CreatedAt:       req.CreatedAt,
	}
}

func ToWithdrawalResponses(reqs []model.WithdrawalRequest) []dto.WithdrawalResponse {
	result := make([]dto.WithdrawalResponse, len(reqs))
	for i := range reqs {
		result[i] = ToWithdrawalResponse(&reqs[i])
	}
	return result
}
