// Package razorpay implements the payment.Gateway port against the
// Razorpay Orders API. Only the two calls the recharge workflow needs are
// implemented: order creation and signature verification.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/provider/payment"
)

// Provider talks to the Razorpay REST API using key-id/key-secret basic
// auth. The HTTP client carries a bounded timeout so a slow gateway never
// wedges request handlers.
type Provider struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Provider from the Razorpay config section.
func New(cfg *config.Razorpay, logger *slog.Logger) *Provider {
	return &Provider{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// orderRequest is the Orders API create payload.
// payment_capture=1 asks Razorpay to auto-capture on authorization.
type orderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt,omitempty"`
	PaymentCapture int               `json:"payment_capture"`
	Notes          map[string]string `json:"notes,omitempty"`
}

// orderResponse is the subset of the Orders API response the workflow uses.
type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Error    *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateOrder opens a payment order for the given minor-unit amount.
// Transport failures and gateway 5xx responses surface as
// domain.ErrGatewayUnavailable so handlers can map them to a retryable
// status; 4xx responses are reported as-is since retrying will not help.
func (p *Provider) CreateOrder(ctx context.Context, params payment.CreateOrderParams) (*payment.Order, error) {
	body, err := json.Marshal(orderRequest{
		Amount:         params.AmountMinor,
		Currency:       params.Currency,
		Receipt:        params.Receipt,
		PaymentCapture: 1,
		Notes:          params.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	url := p.baseURL + "/v1/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.keyID, p.keySecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("razorpay order create failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		p.logger.Error("razorpay order create returned server error",
			"status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("%w: gateway returned status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var order orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		desc := "unknown error"
		if order.Error != nil {
			desc = order.Error.Description
		}
		return nil, fmt.Errorf("gateway rejected order (status %d): %s", resp.StatusCode, desc)
	}

	p.logger.Info("razorpay order created",
		"order_id", order.ID, "amount_minor", order.Amount, "currency", order.Currency)
	return &payment.Order{
		ID:          order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
		Status:      order.Status,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "<order_id>|<payment_id>" with the key secret. Comparison is
// constant-time.
func (p *Provider) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(p.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		p.logger.Warn("payment signature mismatch", "order_id", orderID, "payment_id", paymentID)
		return domain.ErrSignatureInvalid
	}
	return nil
}
