package entity

import (
	"time"
)

// Product is a catalog record for a single game. Catalog reads always
// return the current snapshot; nothing in the commerce flow price-locks it.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	CountInStock int
	Image        string
	Categories   []string
	Trailer      string
	Developer    string
	ReleaseDate  time.Time
	Platform     string
	Ratings      float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
