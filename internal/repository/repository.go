package repository

import (
	"context"
	"time"

	"vaultory_backend/internal/model"
)

type UserRepository interface {
	// UpsertTelegramUser создает пользователя по telegram_id или
	// обновляет профиль, если он уже есть. Возвращает актуальную модель
	UpsertTelegramUser(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int, error)
	UpdateBalance(ctx context.Context, id int, amount int) error

	IncrementCasesOpened(ctx context.Context, id int) error
	AddPurchaseStats(ctx context.Context, id int, amount int) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type CaseRepository interface {
	GetCase(ctx context.Context, id int) (*model.Case, error)
	ListCases(ctx context.Context, onlyActive bool) ([]model.Case, error)
	GetCaseItems(ctx context.Context, caseID int) ([]model.CaseItem, error)
	GetCaseItem(ctx context.Context, id int) (*model.CaseItem, error)

	CreateCase(ctx context.Context, c *model.Case) (int, error)
	UpdateCase(ctx context.Context, c *model.Case) error
	CreateCaseItem(ctx context.Context, item *model.CaseItem) (int, error)
	UpdateCaseItem(ctx context.Context, item *model.CaseItem) error
	DeleteCaseItem(ctx context.Context, id int) error
}

type OpeningRepository interface {
	Create(ctx context.Context, opening *model.Opening) error
	GetByID(ctx context.Context, id string) (*model.Opening, error)
	// Finalize переводит pending-открытие в kept/sold.
	// Возвращает false, если открытие уже финализировано
	Finalize(ctx context.Context, id string, status string) (bool, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]model.Opening, error)
	// MaxOpeningNumber - максимальный выданный номер открытия (0, если
	// открытий нет). Источник правды для засева счетчика
	MaxOpeningNumber(ctx context.Context) (int64, error)
}

// CounterRepository - глобальный счетчик открытий.
// Инкремент обязан быть атомарной операцией "increment-and-return"
type CounterRepository interface {
	Increment(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
	// SeedIfMissing - начальное значение для пустого счетчика.
	// Существующее значение не трогает: счетчик никогда не убывает
	SeedIfMissing(ctx context.Context, value int64) error
}

// DropsRepository - лента последних дропов для начальной загрузки страницы
type DropsRepository interface {
	Push(ctx context.Context, drop *model.LiveDrop) error
	Recent(ctx context.Context, limit int) ([]model.LiveDrop, error)
}

type CatalogRepository interface {
	ListGames(ctx context.Context) ([]model.Game, error)
	ListCategories(ctx context.Context, gameID int) ([]model.Category, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)

	CreateGame(ctx context.Context, g *model.Game) (int, error)
	CreateCategory(ctx context.Context, c *model.Category) (int, error)
	CreateProduct(ctx context.Context, p *model.Product) (int, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID int) ([]model.CartLine, error)
	AddItem(ctx context.Context, userID, productID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order, items []model.OrderItem) error
	ListByUser(ctx context.Context, userID int) ([]model.Order, error)
	ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
}

type InventoryRepository interface {
	Add(ctx context.Context, item *model.InventoryItem) (int, error)
	ListByUser(ctx context.Context, userID int) ([]model.InventoryItem, error)
	GetByID(ctx context.Context, id int) (*model.InventoryItem, error)
	Delete(ctx context.Context, id int) error
	MarkWithdrawn(ctx context.Context, id int) error
}

type WithdrawalRepository interface {
	Create(ctx context.Context, req *model.WithdrawalRequest) (int, error)
	GetByID(ctx context.Context, id int) (*model.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int) ([]model.WithdrawalRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.WithdrawalRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}
