package caseopen

import (
	"context"
	"errors"
	"time"

	"vaultory_backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Open выполняет открытие кейса: списывает цену, выбирает победителя
// и строит ленту рулетки.
//
// Порядок важен: все проверки конфигурации (кейс существует, активен,
// в нем есть предметы) выполняются до списания - ошибки до списания не
// оставляют никаких следов. После списания открытие обязано дойти до
// видимого результата, поэтому сбои счетчика и статистики не фатальны
func (s *serv) Open(ctx context.Context, userID, caseID int) (*model.OpeningResult, error) {
	// Кейс и его каталог
	c, err := s.caseRepo.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if !c.Active {
		return nil, ErrCaseInactive
	}

	items, err := s.caseRepo.GetCaseItems(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	res := &model.OpeningResult{
		OpeningID: uuid.NewString(),
	}

	// Списание, розыгрыш и запись открытия - одной транзакцией.
	// Номер открытия берется только после успешного списания: сорвавшееся
	// открытие не должно потратить номер, иначе periodic-предмет
	// пропустит свой кратный номер и отодвинется на следующий цикл
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if balance < c.Price {
			return ErrNotEnoughBalance
		}

		balance -= c.Price
		if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
			return err
		}

		openingNumber := s.nextOpeningNumber(ctx)

		// Авторитетный победитель. Анимация на клиенте только
		// визуализирует уже выбранный предмет
		winner, err := SelectWinner(items, openingNumber, s.rng)
		if err != nil {
			return err
		}

		strip, winnerIndex := BuildStrip(items, winner, s.rouletteCfg.BaseCount(), s.rouletteCfg.SpinCount(), s.rng)

		res.Winner = winner
		res.Strip = strip
		res.WinnerIndex = winnerIndex
		res.OpeningNumber = openingNumber
		res.Balance = balance

		return s.openingRepo.Create(txCtx, &model.Opening{
			ID:            res.OpeningID,
			UserID:        userID,
			CaseID:        caseID,
			ItemID:        winner.ID,
			OpeningNumber: openingNumber,
		})
	})
	if err != nil {
		return nil, err
	}

	// Статистика - best effort: пользователь уже заплатил,
	// открытие не отменяем из-за счетчиков
	if err := s.userRepo.IncrementCasesOpened(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("не удалось увеличить счетчик открытий пользователя")
	}
	if err := s.userRepo.AddPurchaseStats(ctx, userID, c.Price); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("не удалось обновить статистику покупок")
	}

	s.publishDrop(ctx, userID, c, res.Winner, res.OpeningID)

	return res, nil
}

// nextOpeningNumber выдает следующий глобальный номер открытия.
//
// Счетчик живет в Redis вне транзакции Postgres. При первом обращении
// он засевается максимальным номером из таблицы открытий: после потери
// данных Redis нумерация продолжается, а не начинается заново с 1.
// Сбой счетчика не срывает уже оплаченное открытие - откатываемся на
// последнее известное значение. Локально "следующий = прошлый + 1"
// не считаем: номер всегда приходит от удаленного счетчика
func (s *serv) nextOpeningNumber(ctx context.Context) int64 {
	s.seedOnce.Do(func() {
		last, err := s.openingRepo.MaxOpeningNumber(ctx)
		if err != nil {
			log.WithError(err).Error("не удалось прочитать максимальный номер открытия для засева счетчика")
			return
		}
		if last == 0 {
			return
		}
		if err := s.counterRepo.SeedIfMissing(ctx, last); err != nil {
			log.WithError(err).Error("не удалось засеять счетчик открытий")
		}
	})

	n, err := s.counterRepo.Increment(ctx)
	if err == nil {
		return n
	}

	log.WithError(err).Error("сбой инкремента счетчика открытий, используем текущее значение")
	n, err = s.counterRepo.Current(ctx)
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// publishDrop пишет дроп в ленту и рассылает подписчикам. Не критично
func (s *serv) publishDrop(ctx context.Context, userID int, c *model.Case, winner model.CaseItem, openingID string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.WithError(err).Error("не удалось получить пользователя для ленты дропов")
		return
	}

	drop := model.LiveDrop{
		OpeningID: openingID,
		Username:  user.Username,
		CaseName:  c.Name,
		ItemName:  winner.Name,
		Rarity:    winner.Rarity,
		Price:     winner.Price,
		DroppedAt: time.Now(),
	}

	if err := s.dropsRepo.Push(ctx, &drop); err != nil {
		log.WithError(err).Error("не удалось записать дроп в ленту")
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDrop(drop)
	}
}
