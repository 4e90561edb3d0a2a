package server

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/rest"
)

func TestNewManualDeal(t *testing.T) {
	rq := require.New(t)

	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	deal, err := newManualDeal(rest.NewDeal{
		Title:         "FLEX 24V GLITCH - Massive Discounts on Kits",
		Price:         89.00,
		OriginalPrice: 349.00,
		URL:           "https://acme.example/flex",
		Store:         "acme",
		DealType:      "Glitch",
	}, now)
	rq.NoError(err)

	rq.True(strings.HasPrefix(deal.ID, entity.ManualIDPrefix))
	rq.True(deal.IsManual())
	rq.Equal(value.StoreAcme, deal.Store)
	rq.Equal(value.DealTypeGlitch, deal.DealType)
	rq.Equal(value.StatusActive, deal.Status)
	rq.Equal(now, deal.Timestamp)
	rq.True(deal.Hot)

	// Category omitted: classified from the title.
	rq.Equal(value.CategoryPowerTools, deal.Category)
}

func TestNewManualDealValidation(t *testing.T) {
	rq := require.New(t)

	base := rest.NewDeal{
		Title:    "Some Deal",
		Price:    10,
		URL:      "https://x",
		Store:    "hd",
		DealType: "Sale",
	}

	bad := base
	bad.Store = "target"
	_, err := newManualDeal(bad, time.Now())
	rq.True(domain.HasCode(err, errcodes.InvalidStore))

	bad = base
	bad.DealType = "Mystery"
	_, err = newManualDeal(bad, time.Now())
	rq.True(domain.HasCode(err, errcodes.InvalidDealType))

	bad = base
	bad.Category = "Gadgets"
	_, err = newManualDeal(bad, time.Now())
	rq.True(domain.HasCode(err, errcodes.ValidationError))
}

func TestNewManualDealDefaultsOriginalPrice(t *testing.T) {
	rq := require.New(t)

	deal, err := newManualDeal(rest.NewDeal{
		Title:    "Klein Tools Set",
		Price:    49.99,
		URL:      "https://x",
		Store:    "hd",
		DealType: "Daily Deal",
	}, time.Now())
	rq.NoError(err)

	rq.InDelta(49.99, deal.OriginalPrice, 0.001)
	rq.Zero(deal.DiscountPct())
}

func TestNewRESTDeal(t *testing.T) {
	rq := require.New(t)

	ts := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	restDeal := newRESTDeal(entity.Deal{
		ID:            "imp-1",
		Price:         50,
		OriginalPrice: 100,
		Store:         value.StoreHomeDepot,
		Status:        value.StatusActive,
		Timestamp:     ts,
		LastSeen:      ts,
	})

	rq.InDelta(50.0, restDeal.DiscountPct, 0.001)
	rq.Equal(ts.UnixMilli(), restDeal.Timestamp)
	rq.Equal("hd", restDeal.Store)
}
