package cart

import (
	"context"

	"vaultory_backend/internal/model"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Checkout оформляет заказ по текущей корзине одной транзакцией:
// списание суммы, создание заказа с позициями, доставка цифровых
// товаров в инвентарь, очистка корзины.
//
// Любая ошибка внутри транзакции откатывает все разом - пользователь
// не может оказаться списанным без заказа
func (s *serv) Checkout(ctx context.Context, userID int) (*model.Order, error) {
	var order *model.Order

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lines, err := s.cartRepo.GetCart(txCtx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := 0
		for _, line := range lines {
			total += line.Price * line.Quantity
		}

		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if balance < total {
			return ErrNotEnoughBalance
		}

		if err := s.userRepo.UpdateBalance(txCtx, userID, balance-total); err != nil {
			return err
		}

		order = &model.Order{
			ID:     uuid.NewString(),
			UserID: userID,
			Total:  total,
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, model.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  line.Quantity,
			})
		}

		if err := s.orderRepo.CreateOrder(txCtx, order, items); err != nil {
			return err
		}

		// Доставка купленного в инвентарь
		for _, line := range lines {
			for i := 0; i < line.Quantity; i++ {
				if _, err := s.inventoryRepo.Add(txCtx, &model.InventoryItem{
					UserID:   userID,
					Name:     line.Name,
					Price:    line.Price,
					ImageURL: line.ImageURL,
					Rarity:   model.RarityCommon,
					Source:   model.InventorySourceOrder,
				}); err != nil {
					return err
				}
			}
		}

		return s.cartRepo.Clear(txCtx, userID)
	})
	if err != nil {
		return nil, err
	}

	// Статистика покупок - best effort
	if err := s.userRepo.AddPurchaseStats(ctx, userID, order.Total); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("не удалось обновить статистику покупок")
	}

	return order, nil
}
