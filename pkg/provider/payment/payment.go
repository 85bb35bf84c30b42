// Package payment defines the narrow port to the external payment
// gateway. The workflow receives an implementation by injection so tests
// can substitute a double; nothing outside infra/provider knows which
// gateway is behind it.
package payment

import "context"

// CreateOrderParams carries everything the gateway needs to open a
// payment order. AmountMinor is in the currency's smallest unit (paise
// for INR).
type CreateOrderParams struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	// Notes is opaque metadata echoed back by the gateway; the recharge
	// workflow stores the student and vendor ids here.
	Notes map[string]string
}

// Order is the gateway-side payment intent created before the payer
// completes payment.
type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
	Status      string
}

// Gateway is the order-create / signature-verify handshake surface of the
// payment provider.
type Gateway interface {
	// CreateOrder opens a payment order for the given amount. Transport
	// or server-side failures surface as domain.ErrGatewayUnavailable.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)

	// VerifySignature checks that the {orderID, paymentID, signature}
	// triple genuinely originated from the gateway. A mismatch returns
	// domain.ErrSignatureInvalid.
	VerifySignature(orderID, paymentID, signature string) error
}
