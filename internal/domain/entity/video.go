package entity

import "time"

// FeaturedVideo is the latest upload of the partner YouTube channel, shown on
// the site header.
type FeaturedVideo struct {
	VideoID   string    `json:"video_id" db:"video_id"`
	Title     string    `json:"title" db:"title"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
