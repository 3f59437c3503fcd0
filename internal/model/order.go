package model

import "time"

// CartLine - позиция корзины вместе с данными товара
type CartLine struct {
	ProductID int
	Name      string
	Price     int
	ImageURL  string
	Quantity  int
}

type Order struct {
	ID        string // uuid
	UserID    int
	Total     int
	CreatedAt time.Time
}

type OrderItem struct {
	OrderID   string
	ProductID int
	Name      string
	Price     int
	Quantity  int
}
