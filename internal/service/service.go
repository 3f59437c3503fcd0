package service

import (
	"context"

	"vaultory_backend/internal/model"
)

type AuthService interface {
	// TelegramLogin проверяет подпись виджета Telegram Login
	// и открывает сессию (создавая пользователя при первом входе)
	TelegramLogin(ctx context.Context, login model.TelegramLogin) (*model.AuthData, error)
	AdminLogin(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	// Me возвращает профиль текущего пользователя
	Me(ctx context.Context, userID int) (*model.User, error)
}

type CaseService interface {
	ListCases(ctx context.Context) ([]model.Case, error)
	GetCaseItems(ctx context.Context, caseID int) ([]model.CaseItem, error)
	// Open списывает цену кейса, выбирает победителя и строит ленту.
	// Запись открытия создается в статусе pending
	Open(ctx context.Context, userID, caseID int) (*model.OpeningResult, error)
	// Finalize применяет выбор пользователя (keep/sell) ровно один раз
	Finalize(ctx context.Context, userID int, openingID, action string) (*model.OutcomeResult, error)
	RecentDrops(ctx context.Context, limit int) ([]model.LiveDrop, error)
	// ForceKeepStale финализирует зависшие pending-открытия как keep.
	// Возвращает количество обработанных записей
	ForceKeepStale(ctx context.Context) (int, error)
}

type CatalogService interface {
	ListGames(ctx context.Context) ([]model.Game, error)
	ListCategories(ctx context.Context, gameID int) ([]model.Category, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID int) ([]model.CartLine, error)
	AddItem(ctx context.Context, userID, productID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int) error
	// Checkout списывает сумму корзины, создает заказ
	// и кладет товары в инвентарь одной транзакцией
	Checkout(ctx context.Context, userID int) (*model.Order, error)
}

type InventoryService interface {
	List(ctx context.Context, userID int) ([]model.InventoryItem, error)
	// Sell продает предмет из инвентаря: удаляет его и начисляет стоимость
	Sell(ctx context.Context, userID, itemID int) (balance int, err error)
	RequestWithdrawal(ctx context.Context, userID, itemID int, contact string) (*model.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, userID int) ([]model.WithdrawalRequest, error)
}

type AdminService interface {
	CreateGame(ctx context.Context, g *model.Game) (int, error)
	CreateCategory(ctx context.Context, c *model.Category) (int, error)
	CreateProduct(ctx context.Context, p *model.Product) (int, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int) error

	CreateCase(ctx context.Context, c *model.Case) (int, error)
	UpdateCase(ctx context.Context, c *model.Case) error
	CreateCaseItem(ctx context.Context, item *model.CaseItem) (int, error)
	UpdateCaseItem(ctx context.Context, item *model.CaseItem) error
	DeleteCaseItem(ctx context.Context, id int) error

	ListWithdrawalsByStatus(ctx context.Context, status string) ([]model.WithdrawalRequest, error)
	UpdateWithdrawalStatus(ctx context.Context, id int, status string) error
	AdjustBalance(ctx context.Context, userID, newBalance int) error
}
