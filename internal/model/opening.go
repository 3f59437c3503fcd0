package model

import "time"

// Статусы открытия кейса.
// pending - пользователь ещё не выбрал "забрать"/"продать"
const (
	OpeningStatusPending = "pending"
	OpeningStatusKept    = "kept"
	OpeningStatusSold    = "sold"
)

// Действия пользователя над выпавшим предметом
const (
	OutcomeActionKeep = "keep"
	OutcomeActionSell = "sell"
)

// Opening - одно открытие кейса, создаётся в статусе pending
// в момент списания ставки
type Opening struct {
	ID            string // uuid
	UserID        int
	CaseID        int
	ItemID        int
	OpeningNumber int64 // Глобальный номер открытия
	Status        string
	CreatedAt     time.Time
}

// StripEntry - один слот визуальной ленты рулетки
type StripEntry struct {
	Index int
	Item  CaseItem
}

// LiveDrop - запись ленты "последние дропы"
type LiveDrop struct {
	OpeningID string    `json:"opening_id"`
	Username  string    `json:"username"`
	CaseName  string    `json:"case_name"`
	ItemName  string    `json:"item_name"`
	Rarity    Rarity    `json:"rarity"`
	Price     int       `json:"price"`
	DroppedAt time.Time `json:"dropped_at"`
}

// OutcomeResult - итог выбора keep/sell по открытию.
// Delivered=true значит исход применен именно этим вызовом
type OutcomeResult struct {
	OpeningID string
	Action    string
	Item      CaseItem
	Balance   int
	Delivered bool
}

// OpeningResult - результат открытия: авторитетный победитель
// плюс лента для анимации
type OpeningResult struct {
	OpeningID     string
	Winner        CaseItem
	Strip         []StripEntry
	WinnerIndex   int
	OpeningNumber int64
	Balance       int // Баланс после списания
}
