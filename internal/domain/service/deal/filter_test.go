package deal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/internal/domain/value"
)

func TestEligible(t *testing.T) {
	rq := require.New(t)

	engine := deal.NewEngine().WithDiscountThreshold(15)

	testCases := []struct {
		name     string
		mutate   func(*entity.Listing)
		eligible bool
	}{
		{
			name: "sale exactly at threshold is accepted",
			mutate: func(l *entity.Listing) {
				l.DealType = value.DealTypeSale
				l.Price = 85
				l.OriginalPrice = 100
			},
			eligible: true,
		},
		{
			name: "sale one unit below threshold is rejected",
			mutate: func(l *entity.Listing) {
				l.DealType = value.DealTypeSale
				l.Price = 86
				l.OriginalPrice = 100
			},
			eligible: false,
		},
		{
			name: "bundle with zero discount bypasses the gate",
			mutate: func(l *entity.Listing) {
				l.DealType = value.DealTypeBundle
				l.Price = 100
				l.OriginalPrice = 100
			},
			eligible: true,
		},
		{
			name: "glitch bypasses the gate",
			mutate: func(l *entity.Listing) {
				l.DealType = value.DealTypeGlitch
				l.Price = 100
				l.OriginalPrice = 100
			},
			eligible: true,
		},
		{
			name: "sale with unknown original price reads as 0% and is rejected",
			mutate: func(l *entity.Listing) {
				l.DealType = value.DealTypeSale
				l.Price = 50
				l.OriginalPrice = 0
			},
			eligible: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.eligible, engine.Eligible(listing(tc.mutate)))
		})
	}
}
