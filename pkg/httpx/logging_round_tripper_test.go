package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tooldeals/pkg/httpx"
	"tooldeals/pkg/logx"
)

func TestLoggingRoundTripper(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Items":[]}`)
	}))
	defer server.Close()

	client := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(4096),
		),
	}

	resp, err := client.Get(server.URL + "/Catalogs/ItemSearch?Keyword=dewalt")
	rq.NoError(err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(strings.Contains(string(body), "Items"))
}
