package converter

import (
	dto "vaultory_backend/internal/api/dto/cases"
	"vaultory_backend/internal/model"
)

func ToCaseResponses(cases []model.Case) []dto.CaseResponse {
	result := make([]dto.CaseResponse, len(cases))
	for i, c := range cases {
		result[i] = dto.CaseResponse{
			ID:       c.ID,
			GameID:   c.GameID,
			Name:     c.Name,
			Price:    c.Price,
			ImageURL: c.ImageURL,
		}
	}
	return result
}

func ToCaseItemResponse(item model.CaseItem) dto.CaseItemResponse {
	return dto.CaseItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Rarity:   string(item.Rarity),
		Price:    item.Price,
		ImageURL: item.ImageURL,
	}
}

func ToCaseItemResponses(items []model.CaseItem) []dto.CaseItemResponse {
	result := make([]dto.CaseItemResponse, len(items))
	for i, item := range items {
		result[i] = ToCaseItemResponse(item)
	}
	return result
}

func ToOutcomeResponse(outcome *model.OutcomeResult) dto.OutcomeResponse {
	return dto.OutcomeResponse{
		OpeningID: outcome.OpeningID,
		Action:    outcome.Action,
		Item:      ToCaseItemResponse(outcome.Item),
		Balance:   outcome.Balance,
	}
}

func ToLiveDropResponses(drops []model.LiveDrop) []dto.LiveDropResponse {
	result := make([]dto.LiveDropResponse, len(drops))
	for i, d := range drops {
		result[i] = dto.LiveDropResponse{
			OpeningID: d.OpeningID,
			Username:  d.Username,
			CaseName:  d.CaseName,
			ItemName:  d.ItemName,
			Rarity:    string(d.Rarity),
			Price:     d.Price,
			DroppedAt: d.DroppedAt,
		}
	}
	return result
}
