package entity

import (
	"time"
)

// Comment is a top-level entry in a product's comment forest. The author is
// pinned by UserID at creation time; UserName is carried for rendering only.
// Likes is derived from the per-user like set, so it never loses an update
// and a user counts at most once.
type Comment struct {
	ID        string
	ProductID string
	UserID    string
	UserName  string
	Text      string
	Likes     int
	Timestamp time.Time
	Replies   []Reply
}

// Reply has the same shape as a comment minus nesting. Replies are not
// addressable as comments, so they can never receive replies of their own.
type Reply struct {
	ID        string
	UserID    string
	UserName  string
	Text      string
	Likes     int
	Timestamp time.Time
}
