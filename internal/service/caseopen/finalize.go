package caseopen

import (
	"context"
	"errors"
	"time"

	"vaultory_backend/internal/model"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Finalize применяет выбор пользователя над выпавшим предметом.
// keep - предмет уходит в инвентарь, sell - стоимость зачисляется на баланс.
//
// Гарантия "ровно один раз" обеспечивается статусным UPDATE в
// opening_repo: повторная финализация возвращает ErrAlreadyFinalized
func (s *serv) Finalize(ctx context.Context, userID int, openingID, action string) (*model.OutcomeResult, error) {
	if action != model.OutcomeActionKeep && action != model.OutcomeActionSell {
		return nil, ErrUnknownAction
	}

	var res *model.OutcomeResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		opening, err := s.openingRepo.GetByID(txCtx, openingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOpeningNotFound
			}
			return err
		}
		// Чужое открытие финализировать нельзя
		if opening.UserID != userID {
			return ErrOpeningNotFound
		}

		return s.applyOutcome(txCtx, opening, action, &res)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ForceKeepStale финализирует зависшие pending-открытия действием keep.
// Вызывается фоновой задачей: пользователь закрыл рулетку не выбрав
// действие, а заплатил он еще при открытии - предмет должен дойти
// до инвентаря
func (s *serv) ForceKeepStale(ctx context.Context) (int, error) {
	stale, err := s.openingRepo.ListStalePending(ctx, time.Now().Add(-s.rouletteCfg.PendingTTL()))
	if err != nil {
		return 0, err
	}

	finalized := 0
	for i := range stale {
		opening := stale[i]
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			var res *model.OutcomeResult
			return s.applyOutcome(txCtx, &opening, model.OutcomeActionKeep, &res)
		})
		if err != nil {
			// Гонка с финализацией пользователем - не ошибка
			if errors.Is(err, ErrAlreadyFinalized) {
				continue
			}
			log.WithError(err).WithField("opening_id", opening.ID).Error("не удалось принудительно финализировать открытие")
			continue
		}
		finalized++
	}

	return finalized, nil
}

// applyOutcome переводит открытие в конечный статус и применяет исход.
// Вызывается только внутри транзакции
func (s *serv) applyOutcome(txCtx context.Context, opening *model.Opening, action string, out **model.OutcomeResult) error {
	status := model.OpeningStatusKept
	if action == model.OutcomeActionSell {
		status = model.OpeningStatusSold
	}

	ok, err := s.openingRepo.Finalize(txCtx, opening.ID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyFinalized
	}

	item, err := s.caseRepo.GetCaseItem(txCtx, opening.ItemID)
	if err != nil {
		return err
	}

	res := &model.OutcomeResult{
		OpeningID: opening.ID,
		Action:    action,
		Item:      *item,
		Delivered: true,
	}

	switch action {
	case model.OutcomeActionKeep:
		if _, err := s.inventoryRepo.Add(txCtx, &model.InventoryItem{
			UserID:   opening.UserID,
			Name:     item.Name,
			Rarity:   item.Rarity,
			Price:    item.Price,
			ImageURL: item.ImageURL,
			Source:   model.InventorySourceCase,
		}); err != nil {
			return err
		}
		balance, err := s.userRepo.GetBalance(txCtx, opening.UserID)
		if err != nil {
			return err
		}
		res.Balance = balance

	case model.OutcomeActionSell:
		balance, err := s.userRepo.GetBalance(txCtx, opening.UserID)
		if err != nil {
			return err
		}
		balance += item.Price
		if err := s.userRepo.UpdateBalance(txCtx, opening.UserID, balance); err != nil {
			return err
		}
		res.Balance = balance
	}

	*out = res
	return nil
}
