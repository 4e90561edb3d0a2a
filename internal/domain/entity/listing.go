package entity

import (
	"time"

	"tooldeals/internal/domain/value"
)

// Listing is a normalized, classified candidate produced by a source adapter.
// It carries everything the reconciliation engine needs and nothing
// source-specific.
type Listing struct {
	SourceTag string
	NativeID  string
	Title     string

	// Description never persists; it only feeds deal-type classification.
	Description string

	Price         float64
	OriginalPrice float64
	URL           string
	Image         string
	Store         value.Store
	Category      value.Category
	DealType      value.DealType

	// InitialStatus is the status a brand-new deal gets: active for sources
	// with verified affiliate links, draft for scraped listings that await
	// manual link curation. Zero value means active.
	InitialStatus value.Status
}

// DealID derives the stable deal identity. The same (source, native id) pair
// always yields the same id regardless of any other listing field.
func (l Listing) DealID() string {
	return l.SourceTag + "-" + l.NativeID
}

// Deal materializes a brand-new deal from the listing.
func (l Listing) Deal(now time.Time) Deal {
	status := l.InitialStatus
	if status == "" {
		status = value.StatusActive
	}

	return Deal{
		ID:            l.DealID(),
		Title:         l.Title,
		URL:           l.URL,
		Image:         l.Image,
		Price:         l.Price,
		OriginalPrice: l.OriginalPrice,
		Store:         l.Store,
		Category:      l.Category,
		DealType:      l.DealType,
		Status:        status,
		Timestamp:     now,
		LastSeen:      now,
		Hot:           true,
	}
}
