package models

import "time"

// Category is a user's category as the server stores it. ClientID is the
// identity the owning client assigned; it is unique per user.
type Category struct {
	ID        string
	UserID    string
	ClientID  int64
	Name      string
	Color     string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
