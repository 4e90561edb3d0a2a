package entity

import (
	"strings"
	"time"

	"tooldeals/internal/domain/value"
)

// ManualIDPrefix marks deals posted by hand through the admin API. Manual
// deals are exempt from the automatic expiry sweep: the bot never re-searches
// for them, so absence from a fetch cycle says nothing about their liveness.
const ManualIDPrefix = "manual-"

// Deal is the canonical persisted entity, one row per (source, native id).
type Deal struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	URL           string         `json:"url" db:"url"`
	Image         string         `json:"image" db:"image"`
	Price         float64        `json:"price" db:"price"`
	OriginalPrice float64        `json:"original_price" db:"original_price"`
	Store         value.Store    `json:"store" db:"store"`
	Category      value.Category `json:"category" db:"category"`
	DealType      value.DealType `json:"deal_type" db:"deal_type"`
	Status        value.Status   `json:"status" db:"status"`

	// Timestamp is the sort rank: set on first insert and bumped only on a
	// material price change, so stable listings sink in recency ordering.
	Timestamp time.Time `json:"timestamp" db:"timestamp"`

	// LastSeen tracks liveness independently of the rank: any observation
	// advances it, price change or not.
	LastSeen time.Time `json:"last_seen" db:"last_seen"`

	Hot bool `json:"hot" db:"hot"`
}

// IsManual reports whether the deal was hand-posted rather than ingested.
func (d Deal) IsManual() bool {
	return strings.HasPrefix(d.ID, ManualIDPrefix)
}

// DiscountPct is the apparent percentage off; zero when the original price
// is unknown (sources that omit it get originalPrice == price).
func (d Deal) DiscountPct() float64 {
	if d.OriginalPrice <= 0 {
		return 0
	}

	return (d.OriginalPrice - d.Price) / d.OriginalPrice * 100
}
