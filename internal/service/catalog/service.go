package catalog

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"
)

type serv struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) service.CatalogService {
	return &serv{
		catalogRepo: catalogRepo,
	}
}

func (s *serv) ListGames(ctx context.Context) ([]model.Game, error) {
	return s.catalogRepo.ListGames(ctx)
}

func (s *serv) ListCategories(ctx context.Context, gameID int) ([]model.Category, error) {
	return s.catalogRepo.ListCategories(ctx, gameID)
}

func (s *serv) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	// Витрина всегда показывает только активные товары
	filter.OnlyActive = true
	return s.catalogRepo.ListProducts(ctx, filter)
}

func (s *serv) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	return s.catalogRepo.GetProduct(ctx, id)
}
