package admin

type GameRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

type CategoryRequest struct {
	GameID int    `json:"game_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}

type ProductRequest struct {
	CategoryID  int    `json:"category_id"`
	GameID      int    `json:"game_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
	Active      bool   `json:"active"`
}

type CaseRequest struct {
	GameID   int    `json:"game_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
	Active   bool   `json:"active"`
}

type CaseItemRequest struct {
	CaseID   int    `json:"case_id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
	// Предмет может выпасть только на каждом N-м открытии. 1 - на любом
	PeriodicInterval int `json:"periodic_interval"`
}

type WithdrawalStatusRequest struct {
	Status string `json:"status"` // new, processing, done, rejected
}

type BalanceRequest struct {
	Balance int `json:"balance"` // Новый баланс в копейках
}

type IDResponse struct {
	ID int `json:"id"`
}
