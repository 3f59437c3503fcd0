package converter

import (
	dto "vaultory_backend/internal/api/dto/store"
	"vaultory_backend/internal/model"
)

func ToGameResponses(games []model.Game) []dto.GameResponse {
	result := make([]dto.GameResponse, len(games))
	for i, g := range games {
		result[i] = dto.GameResponse{
			ID:       g.ID,
			Name:     g.Name,
			Slug:     g.Slug,
			ImageURL: g.ImageURL,
		}
	}
	return result
}

func ToCategoryResponses(categories []model.Category) []dto.CategoryResponse {
	result := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = dto.CategoryResponse{
			ID:     c.ID,
			GameID: c.GameID,
			Name:   c.Name,
			Slug:   c.Slug,
		}
	}
	return result
}

func ToProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		GameID:      p.GameID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

func ToProductResponses(products []model.Product) []dto.ProductResponse {
	result := make([]dto.ProductResponse, len(products))
	for i := range products {
		result[i] = ToProductResponse(&products[i])
	}
	return result
}

func ToCartResponse(lines []model.CartLine) dto.CartResponse {
	resp := dto.CartResponse{
		Lines: make([]dto.CartLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = dto.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
		}
		resp.Total += l.Price * l.Quantity
	}
	return resp
}

func ToCheckoutResponse(order *model.Order) dto.CheckoutResponse {
	return dto.CheckoutResponse{
		OrderID:   order.ID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}
