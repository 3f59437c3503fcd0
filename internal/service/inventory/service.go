package inventory

import (
	"context"
	"errors"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	log "github.com/sirupsen/logrus"
)

var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrItemWithdrawn = errors.New("item already withdrawn")
	ErrEmptyContact  = errors.New("contact is required")
)

// WithdrawalNotifier - уведомление админов о новой заявке на вывод
type WithdrawalNotifier interface {
	NotifyWithdrawal(ctx context.Context, req *model.WithdrawalRequest, item *model.InventoryItem) error
}

type serv struct {
	inventoryRepo  repository.InventoryRepository
	withdrawalRepo repository.WithdrawalRepository
	userRepo       repository.UserRepository
	txManager      trm.Manager
	notifier       WithdrawalNotifier
}

// NewInventoryService - сервис инвентаря. notifier может быть nil
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
	txManager trm.Manager,
	notifier WithdrawalNotifier,
) service.InventoryService {
	return &serv{
		inventoryRepo:  inventoryRepo,
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		notifier:       notifier,
	}
}

func (s *serv) List(ctx context.Context, userID int) ([]model.InventoryItem, error) {
	return s.inventoryRepo.ListByUser(ctx, userID)
}

// Sell продает предмет: удаляет из инвентаря и начисляет стоимость.
// Удаление и начисление - одной транзакцией
func (s *serv) Sell(ctx context.Context, userID, itemID int) (int, error) {
	var newBalance int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.inventoryRepo.GetByID(txCtx, itemID)
		if err != nil {
			return ErrItemNotFound
		}
		if item.UserID != userID {
			return ErrItemNotFound
		}
		if item.Withdrawn {
			return ErrItemWithdrawn
		}

		if err := s.inventoryRepo.Delete(txCtx, itemID); err != nil {
			return err
		}

		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}
		newBalance = balance + item.Price

		return s.userRepo.UpdateBalance(txCtx, userID, newBalance)
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// RequestWithdrawal создает заявку на вывод предмета и уведомляет админов
func (s *serv) RequestWithdrawal(ctx context.Context, userID, itemID int, contact string) (*model.WithdrawalRequest, error) {
	if contact == "" {
		return nil, ErrEmptyContact
	}

	item, err := s.inventoryRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}
	if item.UserID != userID {
		return nil, ErrItemNotFound
	}
	if item.Withdrawn {
		return nil, ErrItemWithdrawn
	}

	req := &model.WithdrawalRequest{
		UserID:          userID,
		InventoryItemID: itemID,
		Contact:         contact,
		Status:          model.WithdrawalStatusNew,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		req.ID, err = s.withdrawalRepo.Create(txCtx, req)
		if err != nil {
			return err
		}
		return s.inventoryRepo.MarkWithdrawn(txCtx, itemID)
	})
	if err != nil {
		return nil, err
	}

	// Уведомление - best effort, заявка уже создана
	if s.notifier != nil {
		if err := s.notifier.NotifyWithdrawal(ctx, req, item); err != nil {
			log.WithError(err).WithField("request_id", req.ID).Error("не удалось отправить уведомление о выводе")
		}
	}

	return req, nil
}

func (s *serv) ListWithdrawals(ctx context.Context, userID int) ([]model.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListByUser(ctx, userID)
}
