package converter

import (
	dto "vaultory_backend/internal/api/dto/admin"
	"vaultory_backend/internal/model"
)

func ToGameModel(req dto.GameRequest) *model.Game {
	return &model.Game{
		Name:     req.Name,
		Slug:     req.Slug,
		ImageURL: req.ImageURL,
	}
}

func ToCategoryModel(req dto.CategoryRequest) *model.Category {
	return &model.Category{
		GameID: req.GameID,
		Name:   req.Name,
		Slug:   req.Slug,
	}
}

func ToProductModel(req dto.ProductRequest) *model.Product {
	return &model.Product{
		CategoryID:  req.CategoryID,
		GameID:      req.GameID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	}
}

func ToCaseModel(req dto.CaseRequest) *model.Case {
	return &model.Case{
		GameID:   req.GameID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	}
}

func ToCaseItemModel(req dto.CaseItemRequest) *model.CaseItem {
	interval := req.PeriodicInterval
	if interval < 1 {
		interval = 1
	}
	return &model.CaseItem{
		CaseID:           req.CaseID,
		Name:             req.Name,
		Rarity:           model.Rarity(req.Rarity),
		Price:            req.Price,
		ImageURL:         req.ImageURL,
		PeriodicInterval: interval,
	}
}
