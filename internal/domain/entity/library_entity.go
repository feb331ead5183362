package entity

import (
	"time"
)

// Library is the per-user set of owned games. One library per user,
// created lazily, and membership only ever grows.
type Library struct {
	ID        string
	UserID    string
	Games     []Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
