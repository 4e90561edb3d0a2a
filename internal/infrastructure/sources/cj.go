package sources

import (
	"context"
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
	cjTag = "cj"

	cjProductsQuery = `query($companyId: ID!, $keywords: [String!]) {
		products(companyId: $companyId, keywords: $keywords, limit: 50) {
			resultList {
				id advertiserId title description
				price { amount } salePrice { amount }
				link imageLink
			}
		}
	}`
)

// CJ speaks the commission-junction GraphQL product feed. Advertiser ids map
// to store codes the same way Impact campaigns do.
type CJ struct {
	cfg    config.CJ
	stores []value.Store
	client *resty.Client
}

func NewCJ(cfg config.CJ, httpClient *http.Client) *CJ {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(cfg.Token)

	stores := make([]value.Store, 0, len(cfg.AdvertiserStores))
	for _, code := range cfg.AdvertiserStores {
		stores = append(stores, value.Store(code))
	}

	return &CJ{cfg: cfg, stores: stores, client: client}
}

func (c *CJ) Tag() string { return cjTag }

func (c *CJ) Stores() []value.Store { return c.stores }

func (c *CJ) RateDelay() time.Duration { return c.cfg.RateDelay }

type cjMoney struct {
	Amount float64 `json:"amount,string"`
}

type cjProductsResponse struct {
	Data struct {
		Products struct {
			ResultList []struct {
				ID           string  `json:"id"`
				AdvertiserID string  `json:"advertiserId"`
				Title        string  `json:"title"`
				Description  string  `json:"description"`
				Price        cjMoney `json:"price"`
				SalePrice    cjMoney `json:"salePrice"`
				Link         string  `json:"link"`
				ImageLink    string  `json:"imageLink"`
			} `json:"resultList"`
		} `json:"products"`
	} `json:"data"`
}

func (c *CJ) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	var result cjProductsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"query": cjProductsQuery,
			"variables": map[string]any{
				"companyId": c.cfg.CompanyID,
				"keywords":  []string{term},
			},
		}).
		SetResult(&result).
		Post("/query")
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceFetchFailure, "cj search failed")
	}
	if resp.IsError() {
		return nil, domain.NewError(errcodes.SourceFetchFailure, "cj search returned "+resp.Status())
	}

	products := result.Data.Products.ResultList
	listings := make([]entity.Listing, 0, len(products))
	for _, product := range products {
		storeCode, ok := c.cfg.AdvertiserStores[product.AdvertiserID]
		if !ok {
			continue
		}

		// The sale price is the live price; the list price backs the
		// discount calculation.
		price := product.SalePrice.Amount
		if price <= 0 {
			price = product.Price.Amount
		}
		if price <= 0 {
			continue
		}

		originalPrice := product.Price.Amount
		if originalPrice <= 0 {
			originalPrice = price
		}

		listings = append(listings, entity.Listing{
			SourceTag:     cjTag,
			NativeID:      product.ID,
			Title:         product.Title,
			Description:   product.Description,
			Price:         price,
			OriginalPrice: originalPrice,
			URL:           product.Link,
			Image:         product.ImageLink,
			Store:         value.Store(storeCode),
		})
	}

	logger(ctx).Debug(
		"cj search done",
		slog.String(logx.FieldKeyword, term),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}
