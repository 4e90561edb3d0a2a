package value

import "fmt"

type DealType string

const (
	// DealTypeSale is the default classification: a plain percentage-off
	// listing. Only this type is subject to the minimum-discount gate.
	DealTypeSale     DealType = "Sale"
	DealTypeBOGO     DealType = "BOGO"
	DealTypeFreeGift DealType = "Free Gift"
	DealTypeBundle   DealType = "Bundle"
	DealTypeBuyMore  DealType = "Buy More Save More"

	// DealTypeGlitch marks pricing errors; first discovery triggers the
	// subscriber alert. DealTypeDaily is its manually-curated sibling.
	DealTypeGlitch DealType = "Glitch"
	DealTypeDaily  DealType = "Daily Deal"
)

func (d DealType) String() string {
	return string(d)
}

func (d DealType) Valid() bool {
	switch d {
	case DealTypeSale, DealTypeBOGO, DealTypeFreeGift, DealTypeBundle,
		DealTypeBuyMore, DealTypeGlitch, DealTypeDaily:
		return true
	}

	return false
}

func ParseDealType(raw string) (DealType, error) {
	dealType := DealType(raw)
	if !dealType.Valid() {
		return "", fmt.Errorf("unknown deal type %q", raw)
	}

	return dealType, nil
}
