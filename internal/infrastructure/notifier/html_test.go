package notifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
)

func TestGlitchAlertHTML(t *testing.T) {
	rq := require.New(t)

	html := glitchAlertHTML(entity.Deal{
		ID:            "imp-100500",
		Title:         `DeWalt "XR" Drill & Kit`,
		Price:         9.97,
		OriginalPrice: 199.00,
		URL:           "https://hd.example/drill",
		Image:         "https://img.example/drill.png",
		Store:         value.StoreHomeDepot,
	}, "https://tooldealsdaily.com")

	rq.Contains(html, "$9.97")
	rq.Contains(html, "$199.00")
	rq.Contains(html, `href="https://hd.example/drill"`)
	// Template escaping keeps hostile titles inert.
	rq.Contains(html, "DeWalt &#34;XR&#34; Drill &amp; Kit")
}

func TestNewsletterHTML(t *testing.T) {
	rq := require.New(t)

	glitch := entity.Deal{Title: "Glitched Saw", Price: 5, OriginalPrice: 500, URL: "https://x/1"}
	sale := entity.Deal{Title: "Discounted Kit", Price: 50, OriginalPrice: 100, URL: "https://x/2"}

	html := newsletterHTML([]entity.Deal{glitch}, []entity.Deal{sale}, "https://tooldealsdaily.com")

	rq.Contains(html, "Glitched Saw")
	rq.Contains(html, "Discounted Kit")
	rq.Contains(html, "50% OFF")
	rq.Contains(html, "https://tooldealsdaily.com")
}

func TestNewsletterHTMLEmptySections(t *testing.T) {
	rq := require.New(t)

	html := newsletterHTML(nil, nil, "https://tooldealsdaily.com")

	rq.NotContains(html, "Active Glitches")
	rq.NotContains(html, "Biggest Price Drops")
}
