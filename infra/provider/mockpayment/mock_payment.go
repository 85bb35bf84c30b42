// Package mockpayment simulates the payment gateway for tests and local
// development. It is NOT for production use: signatures are computed with
// a fixed secret and orders live in process memory.
package mockpayment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/provider/payment"
)

// MockGateway records created orders and verifies signatures produced by
// its own Sign helper, mirroring the order/verify handshake of the real
// gateway closely enough for workflow tests.
type MockGateway struct {
	mu     sync.Mutex
	secret string
	seq    int
	orders map[string]*payment.Order

	// FailCreate forces CreateOrder to report the gateway unavailable.
	FailCreate bool
}

// New creates a MockGateway with the given signing secret.
func New(secret string) *MockGateway {
	return &MockGateway{
		secret: secret,
		orders: make(map[string]*payment.Order),
	}
}

// CreateOrder records a new order under a generated id.
func (m *MockGateway) CreateOrder(ctx context.Context, params payment.CreateOrderParams) (*payment.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate {
		return nil, domain.ErrGatewayUnavailable
	}
	m.seq++
	order := &payment.Order{
		ID:          fmt.Sprintf("order_mock%06d", m.seq),
		AmountMinor: params.AmountMinor,
		Currency:    params.Currency,
		Status:      "created",
	}
	m.orders[order.ID] = order
	return order, nil
}

// VerifySignature accepts only signatures produced by Sign.
func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) error {
	if m.Sign(orderID, paymentID) != signature {
		return domain.ErrSignatureInvalid
	}
	return nil
}

// Sign computes the signature the real gateway would send for the given
// order/payment pair. Tests use it to build valid completion requests.
func (m *MockGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(m.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Order returns the recorded order, if any.
func (m *MockGateway) Order(orderID string) (*payment.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	return o, ok
}
