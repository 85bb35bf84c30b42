package razorpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuspay/backend/infra/provider/razorpay"
	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/provider/payment"
	"github.com/campuspay/backend/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(baseURL string) *razorpay.Provider {
	return razorpay.New(&config.Razorpay{
		KeyID:       "rzp_test_key",
		KeySecret:   "test_secret",
		BaseURL:     baseURL,
		HTTPTimeout: 2 * time.Second,
	}, testutils.DiscardLogger())
}

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "test_secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(50000), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, float64(1), body["payment_capture"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_abc123",
			"amount":   50000,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer srv.Close()

	p := newProvider(srv.URL)
	order, err := p.CreateOrder(context.Background(), payment.CreateOrderParams{
		AmountMinor: 50000,
		Currency:    "INR",
		Receipt:     "txn-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(50000), order.AmountMinor)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := newProvider(srv.URL)
	_, err := p.CreateOrder(context.Background(), payment.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestCreateOrder_ClientErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "BAD_REQUEST_ERROR", "description": "amount too small"},
		})
	}))
	defer srv.Close()

	p := newProvider(srv.URL)
	_, err := p.CreateOrder(context.Background(), payment.CreateOrderParams{AmountMinor: 1, Currency: "INR"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestCreateOrder_ConnectionRefused(t *testing.T) {
	p := newProvider("http://127.0.0.1:1")
	_, err := p.CreateOrder(context.Background(), payment.CreateOrderParams{AmountMinor: 100, Currency: "INR"})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestVerifySignature_KnownVector(t *testing.T) {
	p := newProvider("http://unused")

	// HMAC-SHA256("order_abc|pay_def", "test_secret")
	sig := "a0fb98e260da8088d078d7b59366af74e101756182d3c3cee3528ae465da7f7b"
	assert.NoError(t, p.VerifySignature("order_abc", "pay_def", sig))
}

func TestVerifySignature_Mismatch(t *testing.T) {
	p := newProvider("http://unused")
	err := p.VerifySignature("order_abc", "pay_def", "deadbeef")
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
}
