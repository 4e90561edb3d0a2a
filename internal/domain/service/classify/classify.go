// Package classify derives category and deal-type tags from listing text.
// Ordered substring rules; the first match wins.
package classify

import (
	"strings"

	"tooldeals/internal/domain/value"
)

// DealType tags a listing by title and description. Untagged listings are
// plain sales, the only type subject to the discount gate.
func DealType(title, description string) value.DealType {
	t := strings.ToLower(title + " " + description)

	switch {
	case has(t, "buy one", "get one", "bogo"):
		return value.DealTypeBOGO
	case has(t, "free tool", "free bare tool", "bonus tool"):
		return value.DealTypeFreeGift
	case has(t, "free battery", "bonus battery"):
		return value.DealTypeFreeGift
	case has(t, "combo", "kit", "bundle", "value"):
		return value.DealTypeBundle
	case has(t, "buy more", "save more"):
		return value.DealTypeBuyMore
	}

	return value.DealTypeSale
}

// Category buckets a listing by title.
func Category(title string) value.Category {
	t := strings.ToLower(title)

	switch {
	case has(t, "battery", "charger", "power pack"):
		return value.CategoryBatteries
	case has(t, "drill", "driver", "impact"):
		return value.CategoryPowerTools
	case has(t, "saw", "grinder", "sander"):
		return value.CategoryPowerTools
	case has(t, "nailer", "stapler", "combo"):
		return value.CategoryPowerTools
	case has(t, "vacuum", "vac"):
		return value.CategoryPowerTools
	case has(t, "light", "lamp", "flood", "spot"):
		return value.CategoryLighting
	case has(t, "socket", "ratchet", "wrench"):
		return value.CategoryHandTools
	case has(t, "plier", "screwdriver", "hammer", "mallet"):
		return value.CategoryHandTools
	case has(t, "tape") && has(t, "measure"), has(t, "level", "square"):
		return value.CategoryHandTools
	case has(t, "mower", "lawn"):
		return value.CategoryOutdoor
	case has(t, "blower", "leaf"):
		return value.CategoryOutdoor
	case has(t, "trimmer", "edger", "weed", "wacker"):
		return value.CategoryOutdoor
	case has(t, "chainsaw", "chain saw", "pruner"):
		return value.CategoryOutdoor
	case has(t, "washer") && has(t, "pressure"):
		return value.CategoryOutdoor
	case has(t, "sprayer"):
		return value.CategoryOutdoor
	case has(t, "box", "storage", "cabinet", "chest"):
		return value.CategoryStorage
	case has(t, "bag", "tote", "bucket", "organizer"):
		return value.CategoryStorage
	case has(t, "jacket", "hoodie", "gloves", "heated"):
		return value.CategoryApparel
	case has(t, "boot", "shoe", "glasses", "helmet"):
		return value.CategoryApparel
	}

	return value.CategoryOther
}

func has(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}

	return false
}
