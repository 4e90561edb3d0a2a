package entity

import "time"

// Subscriber receives glitch alerts and the weekly newsletter.
type Subscriber struct {
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
