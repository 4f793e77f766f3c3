package domain

import "time"

// Pizza is a catalog item managed by admins.
type Pizza struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	IsAvailable bool
	ImageURL    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
