package sources

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignV4(t *testing.T) {
	rq := require.New(t)

	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	headers := map[string]string{
		"content-encoding": "amz-1.0",
		"content-type":     "application/json; charset=utf-8",
		"host":             "webservices.amazon.com",
		"x-amz-target":     "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems",
	}

	auth := signV4(
		"AKIDEXAMPLE", "secret", "us-east-1", "ProductAdvertisingAPI",
		"POST", "/paapi5/searchitems", headers, []byte(`{"Keywords":"DeWalt XR"}`), now,
	)

	rq.True(strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20251103/us-east-1/ProductAdvertisingAPI/aws4_request"))
	rq.Contains(auth, "SignedHeaders=content-encoding;content-type;host;x-amz-date;x-amz-target")
	rq.Contains(auth, "Signature=")

	// Signing stamps the date header for the caller to send.
	rq.Equal("20251103T120000Z", headers["x-amz-date"])

	// Same inputs, same signature.
	headersAgain := map[string]string{
		"content-encoding": "amz-1.0",
		"content-type":     "application/json; charset=utf-8",
		"host":             "webservices.amazon.com",
		"x-amz-target":     "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems",
	}
	authAgain := signV4(
		"AKIDEXAMPLE", "secret", "us-east-1", "ProductAdvertisingAPI",
		"POST", "/paapi5/searchitems", headersAgain, []byte(`{"Keywords":"DeWalt XR"}`), now,
	)
	rq.Equal(auth, authAgain)

	// Any payload change moves the signature.
	authOther := signV4(
		"AKIDEXAMPLE", "secret", "us-east-1", "ProductAdvertisingAPI",
		"POST", "/paapi5/searchitems", headersAgain, []byte(`{"Keywords":"Ryobi 18v"}`), now,
	)
	rq.NotEqual(auth, authOther)
}
