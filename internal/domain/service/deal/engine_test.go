package deal_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
)

var (
	t0 = time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func listing(mutate ...func(*entity.Listing)) entity.Listing {
	l := entity.Listing{
		SourceTag:     "imp",
		NativeID:      "100500",
		Title:         "Milwaukee M18 Fuel Combo Kit",
		Price:         299.00,
		OriginalPrice: 399.00,
		URL:           "https://example.com/deal",
		Image:         "https://example.com/img.png",
		Store:         value.StoreHomeDepot,
		Category:      value.CategoryPowerTools,
		DealType:      value.DealTypeSale,
	}

	for _, m := range mutate {
		m(&l)
	}

	return l
}

func TestReconcileNewDeal(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	next, notify, err := engine.Reconcile(listing(), nil, t0)
	rq.NoError(err)
	rq.Nil(notify)

	rq.Equal("imp-100500", next.ID)
	rq.Equal(value.StatusActive, next.Status)
	rq.Equal(t0, next.Timestamp)
	rq.Equal(t0, next.LastSeen)
	rq.True(next.Hot)
	rq.InDelta(299.00, next.Price, 0.001)
	rq.InDelta(399.00, next.OriginalPrice, 0.001)
}

func TestReconcileNewDraftDeal(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	scraped := listing(func(l *entity.Listing) {
		l.SourceTag = "scr"
		l.InitialStatus = value.StatusDraft
	})

	next, notify, err := engine.Reconcile(scraped, nil, t0)
	rq.NoError(err)
	rq.Nil(notify)
	rq.Equal(value.StatusDraft, next.Status)
}

func TestReconcileIdentityDeterminism(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	first, _, err := engine.Reconcile(listing(), nil, t0)
	rq.NoError(err)

	// Incidental fields differ, identity key does not.
	again := listing(func(l *entity.Listing) {
		l.Price = 249.00
		l.Title = "Milwaukee M18 FUEL Combo Kit (2-Tool)"
	})

	second, _, err := engine.Reconcile(again, nil, t1)
	rq.NoError(err)

	rq.Equal(first.ID, second.ID)
}

func TestReconcileGlitchNotifiesOnFirstInsightOnly(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	glitch := listing(func(l *entity.Listing) { l.DealType = value.DealTypeGlitch })

	next, notify, err := engine.Reconcile(glitch, nil, t0)
	rq.NoError(err)
	rq.NotNil(notify)
	rq.Equal(next, notify.Deal)

	// Same listing through the update path: never a second alert, no matter
	// how the price moved.
	reobserved := listing(func(l *entity.Listing) {
		l.DealType = value.DealTypeGlitch
		l.Price = 1.00
	})

	_, notify, err = engine.Reconcile(reobserved, &next, t1)
	rq.NoError(err)
	rq.Nil(notify)
}

func TestReconcileNewSaleDoesNotNotify(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	_, notify, err := engine.Reconcile(listing(), nil, t0)
	rq.NoError(err)
	rq.Nil(notify)
}

func TestReconcilePriceChangeBumpsRank(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	existing, _, err := engine.Reconcile(listing(func(l *entity.Listing) { l.Price = 100 }), nil, t0)
	rq.NoError(err)

	next, _, err := engine.Reconcile(listing(func(l *entity.Listing) { l.Price = 90 }), &existing, t1)
	rq.NoError(err)

	rq.Equal(t1, next.Timestamp)
	rq.Equal(t1, next.LastSeen)
	rq.InDelta(90, next.Price, 0.001)
}

func TestReconcileNoOpKeepsRank(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	existing, _, err := engine.Reconcile(listing(), nil, t0)
	rq.NoError(err)

	// First no-op re-observation.
	next, _, err := engine.Reconcile(listing(), &existing, t1)
	rq.NoError(err)
	rq.Equal(t0, next.Timestamp)
	rq.Equal(t1, next.LastSeen)

	// Reconciling the engine's own prior output again stays stable.
	next, _, err = engine.Reconcile(listing(), &next, t2)
	rq.NoError(err)
	rq.Equal(t0, next.Timestamp)
	rq.Equal(t2, next.LastSeen)
}

func TestReconcileFloatNoiseSuppressed(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	existing, _, err := engine.Reconcile(listing(func(l *entity.Listing) { l.Price = 49.99 }), nil, t0)
	rq.NoError(err)

	next, _, err := engine.Reconcile(listing(func(l *entity.Listing) { l.Price = 49.995 }), &existing, t1)
	rq.NoError(err)

	rq.Equal(t0, next.Timestamp)
	rq.InDelta(49.99, next.Price, 0.0001)
}

func TestReconcileImagePreserved(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	existing, _, err := engine.Reconcile(listing(), nil, t0)
	rq.NoError(err)

	incomplete := listing(func(l *entity.Listing) {
		l.Image = ""
		l.Title = "Milwaukee M18 Fuel Combo Kit (refreshed listing)"
	})

	next, _, err := engine.Reconcile(incomplete, &existing, t1)
	rq.NoError(err)

	rq.Equal("https://example.com/img.png", next.Image)
	rq.Equal("Milwaukee M18 Fuel Combo Kit (refreshed listing)", next.Title)
}

func TestReconcileReactivation(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	expired := listing().Deal(t0)
	expired.Status = value.StatusExpired

	next, notify, err := engine.Reconcile(
		listing(func(l *entity.Listing) { l.Price = 249.00 }),
		&expired,
		t1,
	)
	rq.NoError(err)
	rq.Nil(notify)

	rq.Equal(value.StatusActive, next.Status)
	rq.Equal(t1, next.Timestamp)
}

func TestReconcileExpiredWithoutPriceChangeStaysExpired(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	expired := listing().Deal(t0)
	expired.Status = value.StatusExpired

	next, _, err := engine.Reconcile(listing(), &expired, t1)
	rq.NoError(err)

	rq.Equal(value.StatusExpired, next.Status)
	rq.Equal(t0, next.Timestamp)
	rq.Equal(t1, next.LastSeen)
}

func TestReconcileMalformedCandidate(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine()

	testCases := []struct {
		name  string
		price float64
	}{
		{name: "NaN", price: math.NaN()},
		{name: "positive infinity", price: math.Inf(1)},
		{name: "negative price", price: -5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			_, notify, err := engine.Reconcile(
				listing(func(l *entity.Listing) { l.Price = tc.price }),
				nil,
				t0,
			)
			rq.Error(err)
			rq.Nil(notify)
			rq.True(domain.HasCode(err, errcodes.InvalidCandidate))
		})
	}
}
