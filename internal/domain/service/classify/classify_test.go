package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/domain/service/classify"
	"tooldeals/internal/domain/value"
)

func TestDealType(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		title       string
		description string
		expected    value.DealType
	}{
		{title: "Milwaukee M18 Drill, Buy One Get One", expected: value.DealTypeBOGO},
		{title: "DeWalt 20V Max Drill", description: "free bare tool with purchase", expected: value.DealTypeFreeGift},
		{title: "Makita LXT Combo Kit", expected: value.DealTypeBundle},
		{title: "Klein Tools, buy more save more event", expected: value.DealTypeBuyMore},
		{title: "Bosch 18v Impact Driver", expected: value.DealTypeSale},
		// BOGO wins over Bundle when both match: rule order matters.
		{title: "BOGO Combo Kit", expected: value.DealTypeBOGO},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(*testing.T) {
			rq.Equal(tc.expected, classify.DealType(tc.title, tc.description))
		})
	}
}

func TestCategory(t *testing.T) {
	rq := require.New(t)

	rq.Equal(value.CategoryBatteries, classify.Category("DeWalt 20V MAX Battery 2-Pack"))
	rq.Equal(value.CategoryPowerTools, classify.Category("Milwaukee M18 Fuel Impact Driver"))
	rq.Equal(value.CategoryPowerTools, classify.Category("Makita Circular Saw"))
	rq.Equal(value.CategoryLighting, classify.Category("Ryobi 18v Flood Light"))
	rq.Equal(value.CategoryHandTools, classify.Category("Gearwrench Ratchet Set"))
	rq.Equal(value.CategoryHandTools, classify.Category("Stanley Tape Measure 25ft"))
	rq.Equal(value.CategoryOutdoor, classify.Category("EGO Power+ Leaf Blower"))
	rq.Equal(value.CategoryOutdoor, classify.Category("Greenworks Pressure Washer"))
	rq.Equal(value.CategoryStorage, classify.Category("Husky Tool Chest 52in"))
	rq.Equal(value.CategoryApparel, classify.Category("Milwaukee Heated Jacket"))
	rq.Equal(value.CategoryOther, classify.Category("Gift Card"))

	// "battery" outranks "drill": first rule wins.
	rq.Equal(value.CategoryBatteries, classify.Category("Drill with Bonus Battery"))
}
