package domain

import (
	"time"

	"github.com/campuspay/backend/pkg/domain/money"
	"github.com/google/uuid"
)

// TransactionType distinguishes card purchases from wallet recharges.
type TransactionType string

const (
	// TransactionPurchase is a student-to-vendor balance transfer.
	TransactionPurchase TransactionType = "purchase"
	// TransactionRecharge is a gateway-funded wallet top-up.
	TransactionRecharge TransactionType = "recharge"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	// StatusPending marks a recharge order awaiting gateway confirmation.
	StatusPending TransactionStatus = "pending"
	// StatusCompleted marks a settled entry. Terminal.
	StatusCompleted TransactionStatus = "completed"
	// StatusFailed marks an entry whose gateway order was rejected. Terminal.
	StatusFailed TransactionStatus = "failed"
)

// Transaction is one immutable entry in the payment ledger.
//
// Invariants:
//   - Amount is always positive.
//   - Status moves pending→completed or pending→failed, never backwards;
//     purchases are inserted directly as completed.
//   - A recharge entry references exactly one external order id, unique
//     across all recharges.
//   - Balance snapshots are attached when the entry settles, for audit.
type Transaction struct {
	ID          uuid.UUID
	StudentID   string // empty for legacy vendor-only gateway orders
	VendorID    string
	Amount      money.Money
	Type        TransactionType
	Description string
	Status      TransactionStatus

	// ExternalOrderID and PaymentID tie a recharge entry to the gateway
	// order/payment pair; both are empty for purchases.
	ExternalOrderID string
	PaymentID       string

	// StudentBalance and VendorBalance snapshot the post-transfer balances
	// at settlement time.
	StudentBalance *money.Money
	VendorBalance  *money.Money

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// IsSettled reports whether the entry reached a terminal successful state.
func (t *Transaction) IsSettled() bool {
	return t.Status == StatusCompleted
}

// ValidateAmount checks the positive-amount invariant shared by every
// ledger entry.
func ValidateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}
