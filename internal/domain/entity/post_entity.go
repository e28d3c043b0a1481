package entity

import (
	"time"
)

// Post is a text post. UserID is the immutable owner reference; Name and
// Avatar are denormalized from the creating user so list reads need no join.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
