package sources

import (
	"context"
	"encoding/json"
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

const (
	impactTag      = "imp"
	impactPageSize = 150
)

// Impact queries the Mediapartners catalog search. One Impact account fronts
// several merchant campaigns; the campaign-id table in config decides which
// store a catalog item belongs to, and items from unmapped campaigns are
// dropped.
type Impact struct {
	cfg    config.Impact
	stores []value.Store
	client *resty.Client
}

func NewImpact(cfg config.Impact, httpClient *http.Client) *Impact {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json").
		SetHeader("IR-Version", "15")

	stores := make([]value.Store, 0, len(cfg.CampaignStores))
	for _, code := range cfg.CampaignStores {
		stores = append(stores, value.Store(code))
	}

	return &Impact{cfg: cfg, stores: stores, client: client}
}

func (i *Impact) Tag() string { return impactTag }

func (i *Impact) Stores() []value.Store { return i.stores }

func (i *Impact) RateDelay() time.Duration { return i.cfg.RateDelay }

type impactSearchResponse struct {
	Items []struct {
		ID            string      `json:"Id"`
		CampaignID    json.Number `json:"CampaignId"`
		Name          string      `json:"Name"`
		Description   string      `json:"Description"`
		CurrentPrice  json.Number `json:"CurrentPrice"`
		OriginalPrice json.Number `json:"OriginalPrice"`
		URL           string      `json:"Url"`
		ImageURL      string      `json:"ImageUrl"`
	} `json:"Items"`
}

func (i *Impact) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	var result impactSearchResponse
	resp, err := i.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Keyword":  term,
			"PageSize": fmt.Sprint(impactPageSize),
		}).
		SetResult(&result).
		Get(fmt.Sprintf("/Mediapartners/%s/Catalogs/ItemSearch", i.cfg.AccountSID))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceFetchFailure, "impact search failed")
	}
	if resp.IsError() {
		return nil, domain.NewError(errcodes.SourceFetchFailure, "impact search returned "+resp.Status())
	}

	listings := make([]entity.Listing, 0, len(result.Items))
	for _, item := range result.Items {
		storeCode, ok := i.cfg.CampaignStores[item.CampaignID.String()]
		if !ok {
			continue
		}

		price, err := item.CurrentPrice.Float64()
		if err != nil || price <= 0 {
			continue
		}

		originalPrice, err := item.OriginalPrice.Float64()
		if err != nil || originalPrice <= 0 {
			originalPrice = price
		}

		listings = append(listings, entity.Listing{
			SourceTag:     impactTag,
			NativeID:      item.ID,
			Title:         item.Name,
			Description:   item.Description,
			Price:         price,
			OriginalPrice: originalPrice,
			URL:           item.URL,
			Image:         item.ImageURL,
			Store:         value.Store(storeCode),
		})
	}

	logger(ctx).Debug(
		"impact search done",
		slog.String(logx.FieldKeyword, term),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}
