package model

import "time"

type Game struct {
	ID       int
	Name     string
	Slug     string
	ImageURL string
}

type Category struct {
	ID     int
	GameID int
	Name   string
	Slug   string
}

// ProductFilter - фильтры списка товаров. Нулевые значения игнорируются
type ProductFilter struct {
	GameID     int
	CategoryID int
	MaxPrice   int
	OnlyActive bool
}

type Product struct {
	ID          int
	CategoryID  int
	GameID      int
	Name        string
	Description string
	Price       int // Цена в копейках
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
}
