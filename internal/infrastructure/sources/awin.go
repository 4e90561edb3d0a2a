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

const awinTag = "awin"

// Awin serves a single merchant per publisher account, so the store code
// comes straight from config.
type Awin struct {
	cfg    config.Awin
	client *resty.Client
}

func NewAwin(cfg config.Awin, httpClient *http.Client) *Awin {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(cfg.Token)

	return &Awin{cfg: cfg, client: client}
}

func (a *Awin) Tag() string { return awinTag }

func (a *Awin) Stores() []value.Store { return []value.Store{value.Store(a.cfg.Store)} }

func (a *Awin) RateDelay() time.Duration { return a.cfg.RateDelay }

type awinProduct struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Description string  `json:"description"`
	StorePrice  float64 `json:"storePrice,string"`
	RRPPrice    float64 `json:"rrpPrice,string"`
	DeepLink    string  `json:"awDeepLink"`
	ImageURL    string  `json:"awImageUrl"`
}

func (a *Awin) Search(ctx context.Context, term string) ([]entity.Listing, error) {
	var products []awinProduct
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("keyword", term).
		SetResult(&products).
		Get(fmt.Sprintf("/publishers/%s/products", a.cfg.PublisherID))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceFetchFailure, "awin search failed")
	}
	if resp.IsError() {
		return nil, domain.NewError(errcodes.SourceFetchFailure, "awin search returned "+resp.Status())
	}

	listings := make([]entity.Listing, 0, len(products))
	for _, product := range products {
		if product.StorePrice <= 0 {
			continue
		}

		originalPrice := product.RRPPrice
		if originalPrice <= 0 {
			originalPrice = product.StorePrice
		}

		listings = append(listings, entity.Listing{
			SourceTag:     awinTag,
			NativeID:      product.ProductID,
			Title:         product.ProductName,
			Description:   product.Description,
			Price:         product.StorePrice,
			OriginalPrice: originalPrice,
			URL:           product.DeepLink,
			Image:         product.ImageURL,
			Store:         value.Store(a.cfg.Store),
		})
	}

	logger(ctx).Debug(
		"awin search done",
		slog.String(logx.FieldKeyword, term),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}
