package cases

import "time"

type CaseResponse struct {
	ID       int    `json:"id"`
	GameID   int    `json:"game_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"` // Цена открытия в копейках
	ImageURL string `json:"image_url"`
}

type CaseItemResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
}

type FinalizeRequest struct {
	Action string `json:"action"` // keep или sell
}

type OutcomeResponse struct {
	OpeningID string           `json:"opening_id"`
	Action    string           `json:"action"`
	Item      CaseItemResponse `json:"item"`
	Balance   int              `json:"balance"`
}

type LiveDropResponse struct {
	OpeningID string    `json:"opening_id"`
	Username  string    `json:"username"`
	CaseName  string    `json:"case_name"`
	ItemName  string    `json:"item_name"`
	Rarity    string    `json:"rarity"`
	Price     int       `json:"price"`
	DroppedAt time.Time `json:"dropped_at"`
}
