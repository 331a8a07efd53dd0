package chainindex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lldgw/internal/shared/logger"
)

func TestVerifyPurchasePaid(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/verify-purchase", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"orderId": q.Get("orderId"),
			"price":   q.Get("price"),
			"toId":    q.Get("toId"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"paid":true,"txHash":"0xfeed"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	match, err := client.VerifyPurchase(context.Background(), "Order #42", "900900900900901", "merchant-addr")
	require.NoError(t, err)

	assert.True(t, match.Paid)
	assert.Equal(t, "0xfeed", match.TxHash)
	assert.Equal(t, map[string]string{
		"orderId": "Order #42",
		"price":   "900900900900901",
		"toId":    "merchant-addr",
	}, gotQuery)
}

func TestVerifyPurchaseVerifiedSpelling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verified":true,"extrinsicHash":"0xext"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	match, err := client.VerifyPurchase(context.Background(), "42", "1", "addr")
	require.NoError(t, err)

	assert.True(t, match.Paid)
	assert.Equal(t, "0xext", match.TxHash)
}

func TestVerifyPurchaseNotPaid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"paid":false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	match, err := client.VerifyPurchase(context.Background(), "42", "1", "addr")
	require.NoError(t, err)

	assert.False(t, match.Paid)
}

func TestVerifyPurchaseUnknownTxHashSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"paid":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	match, err := client.VerifyPurchase(context.Background(), "42", "1", "addr")
	require.NoError(t, err)

	assert.True(t, match.Paid)
	assert.Equal(t, "unknown", match.TxHash)
}

func TestVerifyPurchaseNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	_, err := client.VerifyPurchase(context.Background(), "42", "1", "addr")
	assert.Error(t, err)
}

func TestVerifyPurchaseMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())

	_, err := client.VerifyPurchase(context.Background(), "42", "1", "addr")
	assert.Error(t, err)
}
