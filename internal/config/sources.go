package config

import "time"

type Sources struct {
	Amazon Amazon
	Impact Impact
	CJ     CJ
	Awin   Awin
	Apify  Apify
}

// Amazon PA-API 5 credentials. The API reports no list price, so the adapter
// synthesizes one; see sources/amazon.
type Amazon struct {
	AccessKey  string        `env:"AMAZON_ACCESS_KEY" json:"-"`
	SecretKey  string        `env:"AMAZON_SECRET_KEY" json:"-"`
	PartnerTag string        `env:"AMAZON_PARTNER_TAG"`
	Host       string        `env:"AMAZON_HOST" envDefault:"webservices.amazon.com"`
	Region     string        `env:"AMAZON_REGION" envDefault:"us-east-1"`
	RateDelay  time.Duration `env:"AMAZON_RATE_DELAY" envDefault:"1500ms"`
}

func (a Amazon) Enabled() bool {
	return a.AccessKey != "" && a.SecretKey != ""
}

type Impact struct {
	BaseURL    string        `env:"IMPACT_BASE_URL" envDefault:"https://api.impact.com"`
	AccountSID string        `env:"IMPACT_ACCOUNT_SID"`
	AuthToken  string        `env:"IMPACT_AUTH_TOKEN" json:"-"`
	RateDelay  time.Duration `env:"IMPACT_RATE_DELAY" envDefault:"500ms"`

	// Campaign id to store code. Items from unmapped campaigns are skipped.
	CampaignStores map[string]string `env:"IMPACT_CAMPAIGN_STORES" envDefault:"8154:hd,11565:acme,9988:ace,12894:tn,9383:walmart"`
}

func (i Impact) Enabled() bool {
	return i.AccountSID != "" && i.AuthToken != ""
}

type CJ struct {
	BaseURL   string        `env:"CJ_BASE_URL" envDefault:"https://ads.api.cj.com"`
	Token     string        `env:"CJ_TOKEN" json:"-"`
	CompanyID string        `env:"CJ_COMPANY_ID"`
	RateDelay time.Duration `env:"CJ_RATE_DELAY" envDefault:"500ms"`

	AdvertiserStores map[string]string `env:"CJ_ADVERTISER_STORES" envDefault:"12096:zoro,13258:northern"`
}

func (c CJ) Enabled() bool {
	return c.Token != "" && c.CompanyID != ""
}

type Awin struct {
	BaseURL     string        `env:"AWIN_BASE_URL" envDefault:"https://api.awin.com"`
	Token       string        `env:"AWIN_TOKEN" json:"-"`
	PublisherID string        `env:"AWIN_PUBLISHER_ID"`
	Store       string        `env:"AWIN_STORE" envDefault:"acme"`
	RateDelay   time.Duration `env:"AWIN_RATE_DELAY" envDefault:"500ms"`
}

func (a Awin) Enabled() bool {
	return a.Token != "" && a.PublisherID != ""
}

// Apify actor output has no affiliate wrapping yet, so its listings land as
// drafts for manual curation.
type Apify struct {
	BaseURL   string        `env:"APIFY_BASE_URL" envDefault:"https://api.apify.com"`
	Token     string        `env:"APIFY_TOKEN" json:"-"`
	ActorID   string        `env:"APIFY_ACTOR_ID"`
	Store     string        `env:"APIFY_STORE" envDefault:"hd"`
	RateDelay time.Duration `env:"APIFY_RATE_DELAY" envDefault:"1s"`
}

func (a Apify) Enabled() bool {
	return a.Token != "" && a.ActorID != ""
}
