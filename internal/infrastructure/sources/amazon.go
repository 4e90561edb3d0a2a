package sources

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"tooldeals/internal/config"
	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
	"tooldeals/pkg/logx"
)

const (
	amazonTag          = "amz"
	amazonSearchPath   = "/paapi5/searchitems"
	amazonSearchTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	amazonService      = "ProductAdvertisingAPI"
	amazonItemCount    = 5

	// PA-API reports no list price, so we synthesize one. The markup matches
	// what the site has always shown for Amazon listings.
	amazonListPriceMarkup = 1.2
)

type Amazon struct {
	cfg    config.Amazon
	client *resty.Client
}

func NewAmazon(cfg config.Amazon, httpClient *http.Client) *Amazon {
	client := resty.NewWithClient(httpClient).
		SetBaseURL("https://" + cfg.Host).
		SetTimeout(30 * time.Second)

	return &Amazon{cfg: cfg, client: client}
}

func (a *Amazon) Tag() string { return amazonTag }

func (a *Amazon) Stores() []value.Store { return []value.Store{value.StoreAmazon} }

func (a *Amazon) RateDelay() time.Duration { return a.cfg.RateDelay }

type amazonSearchRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Resources   []string `json:"Resources"`
}

type amazonSearchResponse struct {
	SearchResult struct {
		Items []struct {
			ASIN          string `json:"ASIN"`
			DetailPageURL string `json:"DetailPageURL"`
			ItemInfo      struct {
				Title struct {
					DisplayValue string `json:"DisplayValue"`
				} `json:"Title"`
			} `json:"ItemInfo"`
			Images struct {
				Primary struct {
					Large struct {
						URL string `json:"URL"`
					} `json:"Large"`
				} `json:"Primary"`
			} `json:"Images"`
			Offers struct {
				Listings []struct {
					Price struct {
						Amount float64 `json:"Amount"`
					} `json:"Price"`
				} `json:"Listings"`
			} `json:"Offers"`
		} `json:"Items"`
	} `json:"SearchResult"`
}

func (a *Amazon) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	payload, err := jsoniter.Marshal(amazonSearchRequest{
		Keywords:    term,
		SearchIndex: "All",
		ItemCount:   amazonItemCount,
		PartnerTag:  a.cfg.PartnerTag,
		PartnerType: "Associates",
		Resources: []string{
			"Images.Primary.Large",
			"ItemInfo.Title",
			"Offers.Listings.Price",
		},
	})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to marshal search request")
	}

	headers := map[string]string{
		"content-encoding": "amz-1.0",
		"content-type":     "application/json; charset=utf-8",
		"host":             a.cfg.Host,
		"x-amz-target":     amazonSearchTarget,
	}
	authorization := signV4(
		a.cfg.AccessKey, a.cfg.SecretKey, a.cfg.Region, amazonService,
		http.MethodPost, amazonSearchPath, headers, payload, time.Now(),
	)
	headers["authorization"] = authorization

	var result amazonSearchResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(payload).
		SetResult(&result).
		Post(amazonSearchPath)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceFetchFailure, "amazon search failed")
	}
	if resp.IsError() {
		return nil, domain.NewError(errcodes.SourceFetchFailure, "amazon search returned "+resp.Status())
	}

	listings := make([]entity.Listing, 0, len(result.SearchResult.Items))
	for _, item := range result.SearchResult.Items {
		if len(item.Offers.Listings) == 0 || item.Offers.Listings[0].Price.Amount <= 0 {
			continue
		}

		price := item.Offers.Listings[0].Price.Amount
		listings = append(listings, entity.Listing{
			SourceTag:     amazonTag,
			NativeID:      item.ASIN,
			Title:         item.ItemInfo.Title.DisplayValue,
			Price:         price,
			OriginalPrice: price * amazonListPriceMarkup,
			URL:           item.DetailPageURL,
			Image:         item.Images.Primary.Large.URL,
			Store:         value.StoreAmazon,
		})
	}

	logger(ctx).Debug(
		"amazon search done",
		slog.String(logx.FieldKeyword, term),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}
