// Package recharge exposes the wallet top-up endpoints: order creation
// for the payment UI and the signed completion callback. The legacy
// /orders pair serves old vendor terminals that pre-date student wallets.
package recharge

import (
	"github.com/campuspay/backend/pkg/config"
	"github.com/campuspay/backend/pkg/currency"
	"github.com/campuspay/backend/pkg/domain/money"
	rechargesvc "github.com/campuspay/backend/pkg/service/recharge"
	"github.com/campuspay/backend/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// CreateOrderRequest opens a gateway order for a student wallet top-up.
// Amount is in major units (rupees).
type CreateOrderRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	VendorID  string  `json:"vendor_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// CreateVendorOrderRequest opens a gateway order with no student wallet
// attached.
type CreateVendorOrderRequest struct {
	VendorID string  `json:"vendor_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// OrderResponse hands the payment UI what it needs to open the checkout:
// the gateway order id, the amount in minor units and the publishable key.
type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// CompleteRequest is the signed confirmation posted after the payer pays.
type CompleteRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// CompleteResponse reports the credited balances. AlreadyProcessed marks
// an idempotent replay.
type CompleteResponse struct {
	NewStudentBalance *float64 `json:"new_student_balance,omitempty"`
	NewVendorBalance  float64  `json:"new_vendor_balance"`
	AlreadyProcessed  bool     `json:"already_processed,omitempty"`
}

// Routes registers the recharge endpoints.
//
// Routes:
//   - POST /recharge/orders          : Open a gateway order for a wallet top-up.
//   - POST /recharge/orders/complete : Verify the payment and credit the wallet.
//   - POST /orders                   : Legacy vendor-only order creation.
//   - POST /orders/verify            : Legacy completion callback.
func Routes(app *fiber.App, rechargeSvc *rechargesvc.Service, cfg *config.Razorpay) {
	app.Post("/recharge/orders", CreateOrder(rechargeSvc, cfg))
	app.Post("/recharge/orders/complete", Complete(rechargeSvc))
	app.Post("/orders", CreateVendorOrder(rechargeSvc, cfg))
	app.Post("/orders/verify", Complete(rechargeSvc))
}

// CreateOrder returns a Fiber handler opening a student top-up order.
func CreateOrder(rechargeSvc *rechargesvc.Service, cfg *config.Razorpay) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateOrderRequest](c)
		if input == nil {
			return err // error response already written
		}

		amount, err := money.New(input.Amount, currency.INR)
		if err != nil {
			log.Errorf("Invalid recharge amount: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}

		order, err := rechargeSvc.CreateOrder(c.Context(), input.StudentID, input.VendorID, amount)
		if err != nil {
			log.Errorf("Failed to create recharge order: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create order", err)
		}

		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Order created", OrderResponse{
			OrderID:  order.OrderID,
			Amount:   order.AmountMinor,
			Currency: order.Currency,
			KeyID:    cfg.KeyID,
		})
	}
}

// CreateVendorOrder returns a Fiber handler for the legacy direct-vendor
// order path.
func CreateVendorOrder(rechargeSvc *rechargesvc.Service, cfg *config.Razorpay) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateVendorOrderRequest](c)
		if input == nil {
			return err // error response already written
		}

		amount, err := money.New(input.Amount, currency.INR)
		if err != nil {
			log.Errorf("Invalid order amount: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}

		order, err := rechargeSvc.CreateVendorOrder(c.Context(), input.VendorID, amount)
		if err != nil {
			log.Errorf("Failed to create vendor order: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create order", err)
		}

		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Order created", OrderResponse{
			OrderID:  order.OrderID,
			Amount:   order.AmountMinor,
			Currency: order.Currency,
			KeyID:    cfg.KeyID,
		})
	}
}

// Complete returns a Fiber handler for the signed completion callback.
// Replays are safe: an already-settled order credits nothing and reports
// the current balances.
func Complete(rechargeSvc *rechargesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CompleteRequest](c)
		if input == nil {
			return err // error response already written
		}

		result, err := rechargeSvc.Complete(c.Context(), input.OrderID, input.PaymentID, input.Signature)
		if err != nil {
			log.Errorf("Failed to complete recharge: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to complete payment", err)
		}

		resp := CompleteResponse{
			NewVendorBalance: common.MinorToMajor(result.NewVendorBalance),
			AlreadyProcessed: result.AlreadyProcessed,
		}
		if result.NewStudentBalance != nil {
			b := common.MinorToMajor(*result.NewStudentBalance)
			resp.NewStudentBalance = &b
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment verified", resp)
	}
}
