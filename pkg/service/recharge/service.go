// Package recharge orchestrates the two-phase wallet top-up protocol
// against the external payment gateway: order creation before the payer
// pays, idempotent completion after the gateway confirms.
package recharge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/domain/money"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/provider/payment"
	"github.com/campuspay/backend/pkg/repository"
	"github.com/google/uuid"
)

// OrderResult is what phase one hands back for presentation to the
// payment UI. AmountMinor is the gateway's integer representation.
type OrderResult struct {
	OrderID     string
	AmountMinor int64
	Currency    string
}

// CompletionResult is the outcome of phase two. NewStudentBalance is nil
// for legacy vendor-only orders. AlreadyProcessed marks an idempotent
// replay: the order had settled before this call and nothing was
// credited again.
type CompletionResult struct {
	NewStudentBalance *int64
	NewVendorBalance  int64
	AlreadyProcessed  bool
}

// Service bridges the ledger store and the payment gateway. The gateway
// is injected so tests can substitute a double.
type Service struct {
	uow     repository.UnitOfWork
	gateway payment.Gateway
	logger  *slog.Logger
}

// New creates a recharge Service.
func New(uow repository.UnitOfWork, gateway payment.Gateway, logger *slog.Logger) *Service {
	return &Service{uow: uow, gateway: gateway, logger: logger}
}

// CreateOrder runs phase one for a student wallet top-up: both parties
// are resolved, the gateway order is opened, and a pending ledger entry
// keyed by the external order id becomes the authoritative record of the
// order amount. Nothing is persisted if the gateway call fails.
func (s *Service) CreateOrder(
	ctx context.Context,
	studentID, vendorID string,
	amount money.Money,
) (res *OrderResult, err error) {
	logger := s.logger.With("student_id", studentID, "vendor_id", vendorID)
	defer func() {
		if err != nil {
			logger.Error("recharge order creation failed", "error", err)
		}
	}()

	if err = domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err = s.uow.Students().Get(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err = s.uow.Vendors().Get(ctx, vendorID); err != nil {
		return nil, err
	}

	return s.createOrder(ctx, studentID, vendorID, amount,
		fmt.Sprintf("Wallet recharge for %s", studentID))
}

// CreateVendorOrder runs phase one for the legacy direct-vendor path: a
// gateway order with no student attached. Completion credits only the
// vendor.
func (s *Service) CreateVendorOrder(
	ctx context.Context,
	vendorID string,
	amount money.Money,
) (res *OrderResult, err error) {
	logger := s.logger.With("vendor_id", vendorID)
	defer func() {
		if err != nil {
			logger.Error("vendor order creation failed", "error", err)
		}
	}()

	if err = domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err = s.uow.Vendors().Get(ctx, vendorID); err != nil {
		return nil, err
	}

	return s.createOrder(ctx, "", vendorID, amount,
		fmt.Sprintf("Payment order for %s", vendorID))
}

func (s *Service) createOrder(
	ctx context.Context,
	studentID, vendorID string,
	amount money.Money,
	description string,
) (*OrderResult, error) {
	txID := uuid.New()
	notes := map[string]string{"vendor_id": vendorID}
	if studentID != "" {
		notes["student_id"] = studentID
	}

	order, err := s.gateway.CreateOrder(ctx, payment.CreateOrderParams{
		AmountMinor: amount.Amount(),
		Currency:    amount.Currency().String(),
		Receipt:     txID.String(),
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}

	create := dto.TransactionCreate{
		ID:              txID,
		StudentID:       studentID,
		VendorID:        vendorID,
		Amount:          amount.Amount(),
		Type:            string(domain.TransactionRecharge),
		Description:     description,
		Status:          string(domain.StatusPending),
		ExternalOrderID: order.ID,
	}
	if err := s.uow.Transactions().Create(ctx, create); err != nil {
		return nil, err
	}

	s.logger.Info("recharge order created",
		"order_id", order.ID, "amount_minor", amount.Amount(), "student_id", studentID, "vendor_id", vendorID)
	return &OrderResult{
		OrderID:     order.ID,
		AmountMinor: amount.Amount(),
		Currency:    amount.Currency().String(),
	}, nil
}

// Complete runs phase two. The signature is verified before anything is
// read or written; the credit amount comes only from the stored pending
// entry, never from the caller. Replaying a completed order credits
// nothing and reports the current balance.
func (s *Service) Complete(
	ctx context.Context,
	orderID, paymentID, signature string,
) (res *CompletionResult, err error) {
	logger := s.logger.With("order_id", orderID, "payment_id", paymentID)
	defer func() {
		if err != nil {
			logger.Error("recharge completion failed", "error", err)
		}
	}()

	if err = s.gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txns := uow.Transactions()

		// Locks the ledger row; a racing completion waits here and then
		// observes the settled status.
		order, err := txns.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status != string(domain.StatusPending) {
			res = &CompletionResult{AlreadyProcessed: true}
			switch {
			case order.StudentBalance != nil:
				res.NewStudentBalance = order.StudentBalance
			case order.StudentID != "":
				student, err := uow.Students().Get(ctx, order.StudentID)
				if err != nil {
					return err
				}
				res.NewStudentBalance = &student.Balance
			}
			if order.VendorBalance != nil {
				res.NewVendorBalance = *order.VendorBalance
			} else {
				vendor, err := uow.Vendors().Get(ctx, order.VendorID)
				if err != nil {
					return err
				}
				res.NewVendorBalance = vendor.Balance
			}
			logger.Info("recharge completion replayed, no credit applied")
			return nil
		}

		var studentBalance *int64
		if order.StudentID != "" {
			if err := uow.Students().Credit(ctx, order.StudentID, order.Amount); err != nil {
				return err
			}
			student, err := uow.Students().Get(ctx, order.StudentID)
			if err != nil {
				return err
			}
			studentBalance = &student.Balance
		}

		if err := uow.Vendors().Credit(ctx, order.VendorID, order.Amount); err != nil {
			return err
		}
		vendor, err := uow.Vendors().Get(ctx, order.VendorID)
		if err != nil {
			return err
		}

		settled, err := txns.MarkCompleted(ctx, order.ID, dto.TransactionSettle{
			PaymentID:      paymentID,
			CompletedAt:    time.Now(),
			StudentBalance: studentBalance,
			VendorBalance:  &vendor.Balance,
		})
		if err != nil {
			return err
		}
		if !settled {
			// Unreachable while the row lock is held; refuse to commit
			// the credits if it ever happens.
			return fmt.Errorf("order %s changed state during completion", orderID)
		}

		res = &CompletionResult{
			NewStudentBalance: studentBalance,
			NewVendorBalance:  vendor.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.AlreadyProcessed {
		logger.Info("recharge completed", "vendor_balance", res.NewVendorBalance)
	}
	return res, nil
}
