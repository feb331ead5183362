package entity

import (
	"time"
)

// News is a storefront announcement article. Articles are editorial content
// managed by admins and listed newest-first by publish date.
type News struct {
	ID            string
	Title         string
	Image         string
	Author        string
	Description   string
	Content       string
	Category      string
	PublishedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
