// Package sources holds the affiliate-network adapters. Each adapter is a
// thin HTTP client that turns one network's search response into normalized
// listings; classification and persistence happen downstream.
package sources

import (
	"context"
	"time"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"

	"tooldeals/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Source interface {
	// Tag is the deal-id prefix for this source.
	Tag() string

	// Stores lists the store codes this source can serve. The scanner only
	// sends a keyword here when the keyword targets one of these stores.
	Stores() []value.Store

	// RateDelay is the pause between consecutive searches against this
	// network.
	RateDelay() time.Duration

	Search(ctx context.Context, term string) ([]entity.Listing, error)
}
