package model

import "time"

// Session - серверная часть refresh-пары.
// RefreshToken хранится в виде SHA-256 хэша
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}
