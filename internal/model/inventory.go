package model

import "time"

// Источники появления предмета в инвентаре
const (
	InventorySourceCase  = "case"
	InventorySourceOrder = "order"
)

type InventoryItem struct {
	ID        int
	UserID    int
	Name      string
	Rarity    Rarity
	Price     int // Стоимость продажи в копейках
	ImageURL  string
	Source    string
	Withdrawn bool
	CreatedAt time.Time
}

// Статусы заявки на вывод предмета
const (
	WithdrawalStatusNew        = "new"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusDone       = "done"
	WithdrawalStatusRejected   = "rejected"
)

type WithdrawalRequest struct {
	ID              int
	UserID          int
	InventoryItemID int
	Contact         string // Куда доставить (ник/аккаунт)
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
