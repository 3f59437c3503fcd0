package auth

// TelegramLoginRequest - данные виджета Telegram Login как их присылает фронт
type TelegramLoginRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}

type AdminLoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	PhotoURL    string `json:"photo_url"`
	Balance     int    `json:"balance"` // Баланс в копейках
	IsAdmin     bool   `json:"is_admin"`
	CasesOpened int    `json:"cases_opened"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
