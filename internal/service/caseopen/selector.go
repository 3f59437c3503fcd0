package caseopen

import (
	"errors"
	"math/rand"

	"vaultory_backend/internal/model"

	log "github.com/sirupsen/logrus"
)

// ErrNoItems - в кейсе нет ни одного предмета. Ошибка конфигурации,
// повторять запрос бессмысленно
var ErrNoItems = errors.New("no items configured")

// Rand - источник случайности, возвращает число из [0, 1).
// Выделен в тип, чтобы подменять в тестах
type Rand func() float64

// DefaultRand - math/rand по умолчанию
func DefaultRand() float64 {
	return rand.Float64()
}

// SelectWinner выбирает выпавший предмет для открытия номер openingNumber.
//
// Предмет с periodic_interval = k может выпасть только на открытиях,
// кратных k. Все предметы, чей интервал делит номер открытия, попадают
// в общий пул и разыгрываются равномерно - без взвешивания по редкости,
// даже если одновременно "созрели" интервалы 50 и 100.
//
// Если пул пуст, отбираются предметы базового уровня (интервал 1).
// Если нет и таких - деградация до всего каталога с предупреждением в лог:
// это ошибка конфигурации кейса, а не нормальный путь
func SelectWinner(items []model.CaseItem, openingNumber int64, rng Rand) (model.CaseItem, error) {
	if len(items) == 0 {
		return model.CaseItem{}, ErrNoItems
	}
	if rng == nil {
		rng = DefaultRand
	}

	// Собираем пул предметов, чей интервал делит номер открытия
	var eligible []model.CaseItem
	for _, item := range items {
		interval := int64(item.PeriodicInterval)
		if interval <= 0 {
			interval = 1
		}
		if openingNumber%interval == 0 {
			eligible = append(eligible, item)
		}
	}

	// Запасной уровень: предметы с интервалом 1
	if len(eligible) == 0 {
		for _, item := range items {
			if item.PeriodicInterval <= 1 {
				eligible = append(eligible, item)
			}
		}
	}

	// Деградация: кейс без базового уровня
	if len(eligible) == 0 {
		log.WithField("opening_number", openingNumber).
			Warn("кейс без предметов базового уровня, разыгрываем весь каталог")
		eligible = items
	}

	return eligible[int(rng()*float64(len(eligible)))], nil
}
