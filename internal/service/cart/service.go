package cart

import (
	"context"
	"errors"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotEnoughBalance = errors.New("not enough balance")
	ErrBadQuantity      = errors.New("quantity must be positive")
)

type serv struct {
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository
	txManager     trm.Manager
}

func NewCartService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
	txManager trm.Manager,
) service.CartService {
	return &serv{
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

func (s *serv) GetCart(ctx context.Context, userID int) ([]model.CartLine, error) {
	return s.cartRepo.GetCart(ctx, userID)
}

func (s *serv) AddItem(ctx context.Context, userID, productID, quantity int) error {
	if quantity <= 0 {
		return ErrBadQuantity
	}
	return s.cartRepo.AddItem(ctx, userID, productID, quantity)
}

func (s *serv) SetQuantity(ctx context.Context, userID, productID, quantity int) error {
	// Нулевое количество равносильно удалению позиции
	if quantity <= 0 {
		return s.cartRepo.RemoveItem(ctx, userID, productID)
	}
	return s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *serv) RemoveItem(ctx context.Context, userID, productID int) error {
	return s.cartRepo.RemoveItem(ctx, userID, productID)
}
