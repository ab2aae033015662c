package models

import "time"

// Post is a content record owned by the user who created it.
// UserID is fixed at creation and never rewritten by updates.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostFields are the client-editable attributes of a post after validation.
type PostFields struct {
	Title string
	Body  string
	Image string
}
