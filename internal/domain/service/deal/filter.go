package deal

import (
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
)

// Eligible is the discount gate in front of the engine. Plain sales below the
// configured threshold are dropped; every other deal type passes regardless,
// since a free-gift or BOGO offer can show 0% nominal discount and still be
// worth surfacing.
func (e *Engine) Eligible(candidate entity.Listing) bool {
	if candidate.DealType != value.DealTypeSale {
		return true
	}

	return discountPct(candidate) >= e.minDiscountPercent
}

func discountPct(candidate entity.Listing) float64 {
	if candidate.OriginalPrice <= 0 {
		return 0
	}

	return (candidate.OriginalPrice - candidate.Price) / candidate.OriginalPrice * 100
}
