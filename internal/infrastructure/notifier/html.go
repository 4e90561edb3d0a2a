package notifier

import (
	"html/template"
	"math"
	"strings"

	"tooldeals/internal/domain/entity"
)

// Inline-styled HTML matching the site's look. Email clients ignore
// stylesheets, hence the attribute soup.

var glitchAlertTemplate = template.Must(template.New("glitch").Parse(`
<div style="font-family: sans-serif; background-color: #f1f5f9; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; padding: 20px; border-radius: 12px; border: 1px solid #e2e8f0;">
    <h2 style="color: #dc2626;">🔥 Glitch Detected</h2>
    {{if .Deal.Image}}<div style="text-align: center; margin-bottom: 15px;">
      <img src="{{.Deal.Image}}" alt="{{.Deal.Title}}" style="max-width: 200px; max-height: 200px;" />
    </div>{{end}}
    <h3 style="color: #0f172a;">{{.Deal.Title}}</h3>
    <div>
      <span style="font-size: 24px; font-weight: bold; color: #dc2626;">${{printf "%.2f" .Deal.Price}}</span>
      <span style="text-decoration: line-through; color: #94a3b8; margin-left: 8px;">${{printf "%.2f" .Deal.OriginalPrice}}</span>
    </div>
    <p><a href="{{.Deal.URL}}" style="background-color: #dc2626; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: bold;">VIEW GLITCH</a></p>
    <p style="color: #94a3b8; font-size: 12px;">Glitches die fast. <a href="{{.SiteURL}}">More deals</a></p>
  </div>
</div>`))

var newsletterTemplate = template.Must(template.New("newsletter").Parse(`
<div style="font-family: sans-serif; background-color: #f1f5f9; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto;">
    <p style="font-size: 16px; color: #334155; text-align: center; margin-bottom: 30px;">
      Here are the absolute best deals the bot found this week.
    </p>
    {{if .Glitches}}
    <h2 style="color: #dc2626; border-bottom: 2px solid #dc2626; padding-bottom: 10px;">🔥 Active Glitches &amp; Errors</h2>
    {{range .Glitches}}
    <div style="background: white; padding: 20px; margin-bottom: 20px; border-radius: 12px; border: 1px solid #e2e8f0;">
      {{if .Image}}<div style="text-align: center; margin-bottom: 15px;">
        <img src="{{.Image}}" alt="{{.Title}}" style="max-width: 200px; max-height: 200px;" />
      </div>{{end}}
      <h3 style="margin: 0 0 10px 0; color: #0f172a;">{{.Title}}</h3>
      <div>
        <span style="font-size: 24px; font-weight: bold; color: #dc2626;">${{printf "%.2f" .Price}}</span>
        <span style="text-decoration: line-through; color: #94a3b8; margin-left: 8px;">${{printf "%.2f" .OriginalPrice}}</span>
        <a href="{{.URL}}" style="float: right; background-color: #dc2626; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: bold;">VIEW GLITCH</a>
      </div>
    </div>
    {{end}}
    {{end}}
    {{if .TopSales}}
    <h2 style="color: #0f172a; border-bottom: 2px solid #0f172a; padding-bottom: 10px; margin-top: 40px;">💰 Biggest Price Drops</h2>
    {{range .TopSales}}
    <div style="background: white; padding: 20px; margin-bottom: 20px; border-radius: 12px; border: 1px solid #e2e8f0;">
      {{if .Image}}<div style="text-align: center; margin-bottom: 15px;">
        <img src="{{.Image}}" alt="{{.Title}}" style="max-width: 200px; max-height: 200px;" />
      </div>{{end}}
      <h3 style="margin: 0 0 10px 0; color: #0f172a;">{{.Title}}</h3>
      <p style="margin: 0 0 10px 0; color: #16a34a; font-weight: bold;">{{.DiscountRounded}}% OFF</p>
      <div>
        <span style="font-size: 24px; font-weight: bold; color: #0f172a;">${{printf "%.2f" .Price}}</span>
        <span style="text-decoration: line-through; color: #94a3b8; margin-left: 8px;">${{printf "%.2f" .OriginalPrice}}</span>
        <a href="{{.URL}}" style="float: right; background-color: #0f172a; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: bold;">VIEW DEAL</a>
      </div>
    </div>
    {{end}}
    {{end}}
    <div style="text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #e2e8f0;">
      <a href="{{.SiteURL}}" style="display: inline-block; background-color: #facc15; color: #0f172a; padding: 12px 25px; text-decoration: none; border-radius: 8px; font-weight: bold;">See All 500+ Deals</a>
      <p style="margin-top: 20px; color: #94a3b8; font-size: 12px;">You are receiving this because you signed up for glitch alerts.</p>
    </div>
  </div>
</div>`))

type newsletterDeal struct {
	entity.Deal
}

func (d newsletterDeal) DiscountRounded() int {
	return int(math.Round(d.DiscountPct()))
}

func glitchAlertHTML(deal entity.Deal, siteURL string) string {
	var buf strings.Builder
	_ = glitchAlertTemplate.Execute(&buf, struct {
		Deal    entity.Deal
		SiteURL string
	}{Deal: deal, SiteURL: siteURL})

	return buf.String()
}

func newsletterHTML(glitches, topSales []entity.Deal, siteURL string) string {
	wrap := func(deals []entity.Deal) []newsletterDeal {
		wrapped := make([]newsletterDeal, 0, len(deals))
		for _, d := range deals {
			wrapped = append(wrapped, newsletterDeal{Deal: d})
		}
		return wrapped
	}

	var buf strings.Builder
	_ = newsletterTemplate.Execute(&buf, struct {
		Glitches []newsletterDeal
		TopSales []newsletterDeal
		SiteURL  string
	}{Glitches: wrap(glitches), TopSales: wrap(topSales), SiteURL: siteURL})

	return buf.String()
}
