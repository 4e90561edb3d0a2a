package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"tooldeals/internal/config"
	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/logx"
)

const apifyTag = "scr"

// Apify runs a scraping actor synchronously and reads its dataset. Scraped
// listings carry raw retailer links, not affiliate ones, so they land as
// drafts until an admin verifies the link and publishes.
type Apify struct {
	cfg    config.Apify
	client *resty.Client
}

func NewApify(cfg config.Apify, httpClient *http.Client) *Apify {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(2 * time.Minute).
		SetQueryParam("token", cfg.Token)

	return &Apify{cfg: cfg, client: client}
}

func (a *Apify) Tag() string { return apifyTag }

func (a *Apify) Stores() []value.Store { return []value.Store{value.Store(a.cfg.Store)} }

func (a *Apify) RateDelay() time.Duration { return a.cfg.RateDelay }

type apifyItem struct {
	SKU           string  `json:"sku"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	URL           string  `json:"url"`
	Image         string  `json:"image"`
}

func (a *Apify) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	var items []apifyItem
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"searchTerm": term}).
		SetResult(&items).
		Post(fmt.Sprintf("/v2/acts/%s/run-sync-get-dataset-items", a.cfg.ActorID))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceFetchFailure, "apify run failed")
	}
	if resp.IsError() {
		return nil, domain.NewError(errcodes.SourceFetchFailure, "apify run returned "+resp.Status())
	}

	listings := make([]entity.Listing, 0, len(items))
	for _, item := range items {
		if item.SKU == "" || item.Price <= 0 {
			continue
		}

		originalPrice := item.OriginalPrice
		if originalPrice <= 0 {
			originalPrice = item.Price
		}

		listings = append(listings, entity.Listing{
			SourceTag:     apifyTag,
			NativeID:      item.SKU,
			Title:         item.Title,
			Price:         item.Price,
			OriginalPrice: originalPrice,
			URL:           item.URL,
			Image:         item.Image,
			Store:         value.Store(a.cfg.Store),
			InitialStatus: value.StatusDraft,
		})
	}

	logger(ctx).Debug(
		"apify run done",
		slog.String(logx.FieldKeyword, term),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}
