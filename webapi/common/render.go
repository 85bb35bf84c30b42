package common

import (
	"time"

	"github.com/campuspay/backend/pkg/currency"
	"github.com/campuspay/backend/pkg/domain/money"
	"github.com/campuspay/backend/pkg/dto"
)

// TransactionResponse is the JSON projection of a ledger entry, shared by
// the student and vendor history endpoints. Amounts are in major units.
type TransactionResponse struct {
	ID              string   `json:"id"`
	StudentID       string   `json:"student_id,omitempty"`
	VendorID        string   `json:"vendor_id"`
	Amount          float64  `json:"amount"`
	Type            string   `json:"type"`
	Description     string   `json:"description,omitempty"`
	Status          string   `json:"status"`
	ExternalOrderID string   `json:"order_id,omitempty"`
	PaymentID       string   `json:"payment_id,omitempty"`
	StudentBalance  *float64 `json:"student_balance,omitempty"`
	VendorBalance   *float64 `json:"vendor_balance,omitempty"`
	CreatedAt       string   `json:"created_at"`
	CompletedAt     string   `json:"completed_at,omitempty"`
}

// ToTransactionResponse maps a ledger entry to the API shape.
func ToTransactionResponse(t *dto.TransactionRead) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID.String(),
		StudentID:       t.StudentID,
		VendorID:        t.VendorID,
		Amount:          MinorToMajor(t.Amount),
		Type:            t.Type,
		Description:     t.Description,
		Status:          t.Status,
		ExternalOrderID: t.ExternalOrderID,
		PaymentID:       t.PaymentID,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
	if t.StudentBalance != nil {
		b := MinorToMajor(*t.StudentBalance)
		resp.StudentBalance = &b
	}
	if t.VendorBalance != nil {
		b := MinorToMajor(*t.VendorBalance)
		resp.VendorBalance = &b
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// ToTransactionResponses maps a slice of ledger entries, preserving order.
func ToTransactionResponses(ts []*dto.TransactionRead) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// MinorToMajor converts a stored paise amount to rupees for the API.
func MinorToMajor(minor int64) float64 {
	m, err := money.NewFromMinor(minor, currency.INR)
	if err != nil {
		return float64(minor) / 100
	}
	return m.AmountFloat()
}
