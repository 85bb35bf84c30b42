// Package transfer implements the balance-transfer engine: the one code
// path allowed to move money between a student wallet and a vendor
// settlement balance while appending to the ledger.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/domain/money"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/repository"
	"github.com/google/uuid"
)

// Service applies balance transfers. Every mutation runs inside one
// UnitOfWork transaction: debit, credit and ledger insert commit together
// or not at all.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transfer Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Purchase debits the student, credits the vendor, and appends a completed
// purchase entry carrying both post-transfer balance snapshots.
//
// Invariants enforced:
//   - Amount must be positive.
//   - Student and vendor must exist.
//   - The student balance never goes negative: the sufficiency check and
//     the debit are a single conditional update, so a concurrent purchase
//     cannot sneak between them.
//
// Any storage failure rolls back the whole transfer.
func (s *Service) Purchase(
	ctx context.Context,
	studentID, vendorID string,
	amount money.Money,
	description string,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With(
		"student_id", studentID, "vendor_id", vendorID, "amount", amount.String())
	logger.Info("purchase started")
	defer func() {
		if err != nil {
			logger.Error("purchase failed", "error", err)
		}
	}()

	if err = domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		students := uow.Students()
		vendors := uow.Vendors()

		// Resolve both parties first so a missing vendor is reported
		// before any balance is touched.
		if _, err := students.Get(ctx, studentID); err != nil {
			return err
		}
		if _, err := vendors.Get(ctx, vendorID); err != nil {
			return err
		}

		debited, err := students.DebitIfSufficient(ctx, studentID, amount.Amount())
		if err != nil {
			return err
		}
		if !debited {
			return domain.ErrInsufficientBalance
		}
		if err := vendors.Credit(ctx, vendorID, amount.Amount()); err != nil {
			return err
		}

		// Re-read inside the transaction for the audit snapshots.
		studentAfter, err := students.Get(ctx, studentID)
		if err != nil {
			return err
		}
		vendorAfter, err := vendors.Get(ctx, vendorID)
		if err != nil {
			return err
		}

		create := dto.TransactionCreate{
			ID:             uuid.New(),
			StudentID:      studentID,
			VendorID:       vendorID,
			Amount:         amount.Amount(),
			Type:           string(domain.TransactionPurchase),
			Description:    description,
			Status:         string(domain.StatusCompleted),
			StudentBalance: &studentAfter.Balance,
			VendorBalance:  &vendorAfter.Balance,
		}
		if err := uow.Transactions().Create(ctx, create); err != nil {
			return err
		}

		now := time.Now()
		tx = &dto.TransactionRead{
			ID:             create.ID,
			StudentID:      create.StudentID,
			VendorID:       create.VendorID,
			Amount:         create.Amount,
			Type:           create.Type,
			Description:    create.Description,
			Status:         create.Status,
			StudentBalance: create.StudentBalance,
			VendorBalance:  create.VendorBalance,
			CreatedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("purchase completed",
		"transaction_id", tx.ID,
		"new_student_balance", *tx.StudentBalance,
		"new_vendor_balance", *tx.VendorBalance)
	return tx, nil
}
