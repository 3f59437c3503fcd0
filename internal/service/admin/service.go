package admin

import (
	"context"
	"errors"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"
)

var ErrUnknownStatus = errors.New("unknown withdrawal status")

// Допустимые переходы статусов заявки на вывод
var validStatuses = map[string]bool{
	model.WithdrawalStatusProcessing: true,
	model.WithdrawalStatusDone:       true,
	model.WithdrawalStatusRejected:   true,
}

type serv struct {
	catalogRepo    repository.CatalogRepository
	caseRepo       repository.CaseRepository
	withdrawalRepo repository.WithdrawalRepository
	userRepo       repository.UserRepository
}

func NewAdminService(
	catalogRepo repository.CatalogRepository,
	caseRepo repository.CaseRepository,
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
) service.AdminService {
	return &serv{
		catalogRepo:    catalogRepo,
		caseRepo:       caseRepo,
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
	}
}

func (s *serv) CreateGame(ctx context.Context, g *model.Game) (int, error) {
	return s.catalogRepo.CreateGame(ctx, g)
}

func (s *serv) CreateCategory(ctx context.Context, c *model.Category) (int, error) {
	return s.catalogRepo.CreateCategory(ctx, c)
}

func (s *serv) CreateProduct(ctx context.Context, p *model.Product) (int, error) {
	return s.catalogRepo.CreateProduct(ctx, p)
}

func (s *serv) UpdateProduct(ctx context.Context, p *model.Product) error {
	return s.catalogRepo.UpdateProduct(ctx, p)
}

func (s *serv) DeleteProduct(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteProduct(ctx, id)
}

func (s *serv) CreateCase(ctx context.Context, c *model.Case) (int, error) {
	return s.caseRepo.CreateCase(ctx, c)
}

func (s *serv) UpdateCase(ctx context.Context, c *model.Case) error {
	return s.caseRepo.UpdateCase(ctx, c)
}

func (s *serv) CreateCaseItem(ctx context.Context, item *model.CaseItem) (int, error) {
	return s.caseRepo.CreateCaseItem(ctx, item)
}

func (s *serv) UpdateCaseItem(ctx context.Context, item *model.CaseItem) error {
	return s.caseRepo.UpdateCaseItem(ctx, item)
}

func (s *serv) DeleteCaseItem(ctx context.Context, id int) error {
	return s.caseRepo.DeleteCaseItem(ctx, id)
}

func (s *serv) ListWithdrawalsByStatus(ctx context.Context, status string) ([]model.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListByStatus(ctx, status)
}

func (s *serv) UpdateWithdrawalStatus(ctx context.Context, id int, status string) error {
	if !validStatuses[status] {
		return ErrUnknownStatus
	}
	return s.withdrawalRepo.UpdateStatus(ctx, id, status)
}

func (s *serv) AdjustBalance(ctx context.Context, userID, newBalance int) error {
	return s.userRepo.UpdateBalance(ctx, userID, newBalance)
}
