package deal

import (
	"fmt"
	"math"
	"time"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
)

// priceEpsilon absorbs float noise: a sub-cent delta is not a price change
// and must not re-rank the deal.
const priceEpsilon = 0.01

// Notification is the engine's side-effect intent: the caller decides how to
// dispatch it (email, telegram), the engine only decides whether to emit it.
type Notification struct {
	Deal entity.Deal
}

// Engine owns the read-modify-write transition for a single deal. It is pure:
// persistence and notification dispatch happen in the caller, which makes the
// decision logic testable without any collaborator mocks.
type Engine struct {
	minDiscountPercent float64
	retentionWindow    time.Duration
	urgentDealTypes    map[value.DealType]struct{}
}

func NewEngine() *Engine {
	return &Engine{
		minDiscountPercent: 15.0,
		retentionWindow:    24 * time.Hour,
		urgentDealTypes: map[value.DealType]struct{}{
			value.DealTypeGlitch: {},
		},
	}
}

func (e *Engine) WithDiscountThreshold(percent float64) *Engine {
	e.minDiscountPercent = percent
	return e
}

func (e *Engine) WithRetentionWindow(window time.Duration) *Engine {
	e.retentionWindow = window
	return e
}

func (e *Engine) WithUrgentDealTypes(types ...value.DealType) *Engine {
	e.urgentDealTypes = make(map[value.DealType]struct{}, len(types))
	for _, t := range types {
		e.urgentDealTypes[t] = struct{}{}
	}
	return e
}

// RetentionWindow returns the liveness window used by the expiry sweep.
func (e *Engine) RetentionWindow() time.Duration {
	return e.retentionWindow
}

// Reconcile decides the next persisted state for a candidate listing and
// whether a subscriber notification fires. existing is nil for a never-seen
// identity; now is injected for testability.
func (e *Engine) Reconcile(candidate entity.Listing, existing *entity.Deal, now time.Time) (entity.Deal, *Notification, error) {
	if err := validateCandidate(candidate); err != nil {
		return entity.Deal{}, nil, err
	}

	if existing == nil {
		next := candidate.Deal(now)

		// Notify on first insight only: an urgent deal re-observed on a later
		// cycle is old news, and keying the alert to discovery bounds the
		// notification volume to one per glitch.
		if e.isUrgent(candidate.DealType) {
			return next, &Notification{Deal: next}, nil
		}

		return next, nil, nil
	}

	next := *existing
	priceChanged := math.Abs(candidate.Price-existing.Price) > priceEpsilon

	// Non-ranking fields always follow the source.
	next.Title = candidate.Title
	next.URL = candidate.URL
	next.Store = candidate.Store
	next.Category = candidate.Category
	next.DealType = candidate.DealType

	// Never regress a previously-good display field when new data is merely
	// incomplete.
	if candidate.Image != "" {
		next.Image = candidate.Image
	}

	if priceChanged {
		next.Price = candidate.Price
		next.OriginalPrice = candidate.OriginalPrice
		next.Timestamp = now
	}

	if existing.Status == value.StatusExpired && priceChanged {
		// Reactivation counts as new for ranking purposes.
		next.Status = value.StatusActive
		next.Timestamp = now
	}

	next.LastSeen = now

	return next, nil, nil
}

func (e *Engine) isUrgent(dealType value.DealType) bool {
	_, ok := e.urgentDealTypes[dealType]
	return ok
}

// validateCandidate fails fast on malformed numerics. The discount filter is
// supposed to reject these upstream; the engine never silently coerces.
func validateCandidate(candidate entity.Listing) error {
	for _, price := range []float64{candidate.Price, candidate.OriginalPrice} {
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return domain.NewError(errcodes.InvalidCandidate,
				fmt.Sprintf("malformed price %v for %s", price, candidate.DealID()))
		}
	}

	return nil
}
