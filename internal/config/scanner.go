package config

import (
	"strings"
	"time"
)

type Scanner struct {
	MinDiscountPercent float64       `env:"MIN_DISCOUNT_PERCENT" envDefault:"15"`
	RetentionWindow    time.Duration `env:"RETENTION_WINDOW" envDefault:"24h"`
	SourceTimeout      time.Duration `env:"SOURCE_TIMEOUT" envDefault:"2m"`
	RefreshSchedule    string        `env:"REFRESH_SCHEDULE" envDefault:"@every 1h"`
	NewsletterSchedule string        `env:"NEWSLETTER_SCHEDULE" envDefault:"0 9 * * 1"`
	VideoSchedule      string        `env:"VIDEO_SCHEDULE" envDefault:"@every 6h"`

	// Comma-separated override; each term then targets every store.
	Keywords []string `env:"SCAN_KEYWORDS" envSeparator:","`
}

// Keyword is a search term with the store codes it is worth querying.
// An empty Stores list means every store.
type Keyword struct {
	Term   string
	Stores []string
}

func (k Keyword) Matches(store string) bool {
	if len(k.Stores) == 0 {
		return true
	}

	for _, s := range k.Stores {
		if strings.EqualFold(s, store) {
			return true
		}
	}

	return false
}

// SearchKeywords returns the configured override or the built-in term list.
func (s Scanner) SearchKeywords() []Keyword {
	if len(s.Keywords) > 0 {
		keywords := make([]Keyword, 0, len(s.Keywords))
		for _, term := range s.Keywords {
			if term = strings.TrimSpace(term); term != "" {
				keywords = append(keywords, Keyword{Term: term})
			}
		}

		return keywords
	}

	return defaultKeywords
}

var defaultKeywords = []Keyword{ //nolint:gochecknoglobals
	{Term: "DeWalt 20V Kit"},
	{Term: "DeWalt XR"},
	{Term: "DeWalt PowerStack"},
	{Term: "Milwaukee M18 Fuel"},
	{Term: "Milwaukee M12 Fuel"},
	{Term: "Milwaukee Packout"},
	{Term: "Makita 18V LXT"},
	{Term: "Makita 40V XGT"},
	{Term: "Flex 24V", Stores: []string{"acme", "lowes"}},
	{Term: "Flex Stacked Lithium", Stores: []string{"acme", "lowes"}},
	{Term: "Flex Circular Saw", Stores: []string{"acme", "lowes"}},
	{Term: "Flex Impact Driver", Stores: []string{"acme", "lowes"}},
	{Term: "Metabo HPT MultiVolt", Stores: []string{"amz", "acme", "lowes"}},
	{Term: "Metabo HPT Nailer", Stores: []string{"amz", "acme", "lowes"}},
	{Term: "Bosch 18v"},
	{Term: "Gearwrench Set"},
	{Term: "Klein Tools"},
	{Term: "Ridgid 18v", Stores: []string{"hd"}},
	{Term: "Ryobi 18v One+", Stores: []string{"hd"}},
	{Term: "Ryobi 40v", Stores: []string{"hd"}},
	{Term: "Husky Tool Chest", Stores: []string{"hd"}},
	{Term: "Husky Mechanics Set", Stores: []string{"hd"}},
	{Term: "Kobalt 24v", Stores: []string{"lowes"}},
	{Term: "Greenworks 60v", Stores: []string{"walmart", "amz"}},
	{Term: "Greenworks 80v", Stores: []string{"walmart", "amz"}},
	{Term: "Hart 20v", Stores: []string{"walmart"}},
	{Term: "Hart Storage", Stores: []string{"walmart"}},
	{Term: "Hyper Tough 20v", Stores: []string{"walmart"}},
	{Term: "EGO Power+", Stores: []string{"amz", "acme", "ace", "lowes"}},
	{Term: "Skil PwrCore", Stores: []string{"amz", "acme", "walmart"}},
}
