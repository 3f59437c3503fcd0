package store

import "time"

type GameResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

type CategoryResponse struct {
	ID     int    `json:"id"`
	GameID int    `json:"game_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}

type ProductResponse struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id"`
	GameID      int    `json:"game_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // Цена в копейках
	ImageURL    string `json:"image_url"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"` // 0 удаляет позицию
}

type CartLineResponse struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total int                `json:"total"`
}

type CheckoutResponse struct {
	OrderID   string    `json:"order_id"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
