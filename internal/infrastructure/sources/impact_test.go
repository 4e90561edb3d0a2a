package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tooldeals/internal/config"
	"tooldeals/internal/domain/value"
	"tooldeals/internal/infrastructure/sources"
)

func TestImpactSearch(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/Mediapartners/sid-1/Catalogs/ItemSearch", r.URL.Path)
		rq.Equal("Milwaukee M18 Fuel", r.URL.Query().Get("Keyword"))
		rq.Equal("15", r.Header.Get("IR-Version"))

		user, pass, ok := r.BasicAuth()
		rq.True(ok)
		rq.Equal("sid-1", user)
		rq.Equal("token-1", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items": [
			{"Id": "11", "CampaignId": 8154, "Name": "M18 Drill", "CurrentPrice": "99.00", "OriginalPrice": "149.00", "Url": "https://hd.example/11", "ImageUrl": "https://img/11"},
			{"Id": "12", "CampaignId": 9383, "Name": "M18 Battery", "CurrentPrice": "79.00", "OriginalPrice": "", "Url": "https://wm.example/12", "ImageUrl": ""},
			{"Id": "13", "CampaignId": 424242, "Name": "Unmapped campaign", "CurrentPrice": "10.00", "OriginalPrice": "20.00", "Url": "", "ImageUrl": ""},
			{"Id": "14", "CampaignId": 8154, "Name": "No price", "CurrentPrice": "", "OriginalPrice": "", "Url": "", "ImageUrl": ""}
		]}`))
	}))
	defer srv.Close()

	source := sources.NewImpact(config.Impact{
		BaseURL:    srv.URL,
		AccountSID: "sid-1",
		AuthToken:  "token-1",
		RateDelay:  500 * time.Millisecond,
		CampaignStores: map[string]string{
			"8154": "hd",
			"9383": "walmart",
		},
	}, srv.Client())

	listings, err := source.Search(context.Background(), "Milwaukee M18 Fuel")
	rq.NoError(err)

	// The unmapped campaign and the priceless item are dropped.
	rq.Len(listings, 2)

	rq.Equal("imp", listings[0].SourceTag)
	rq.Equal("11", listings[0].NativeID)
	rq.Equal(value.StoreHomeDepot, listings[0].Store)
	rq.InDelta(99.00, listings[0].Price, 0.001)
	rq.InDelta(149.00, listings[0].OriginalPrice, 0.001)

	// Missing list price falls back to the current price.
	rq.Equal(value.StoreWalmart, listings[1].Store)
	rq.InDelta(79.00, listings[1].OriginalPrice, 0.001)
}

func TestImpactSearchServerError(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	source := sources.NewImpact(config.Impact{
		BaseURL:        srv.URL,
		AccountSID:     "sid-1",
		AuthToken:      "token-1",
		CampaignStores: map[string]string{"8154": "hd"},
	}, srv.Client())

	_, err := source.Search(context.Background(), "DeWalt XR")
	rq.Error(err)
}
