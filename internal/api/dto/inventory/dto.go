package inventory

import "time"

type ItemResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Rarity    string    `json:"rarity"`
	Price     int       `json:"price"`
	ImageURL  string    `json:"image_url"`
	Source    string    `json:"source"`
	Withdrawn bool      `json:"withdrawn"`
	CreatedAt time.Time `json:"created_at"`
}

type SellResponse struct {
	Balance int `json:"balance"` // Баланс после продажи
}

type WithdrawRequest struct {
	Contact string `json:"contact"` // Куда доставить предмет
}

type WithdrawalResponse struct {
	ID              int       `json:"id"`
	InventoryItemID int       `json:"inventory_item_id"`
	Contact         string    `json:"contact"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
