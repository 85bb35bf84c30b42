// Package transaction implements the ledger repository over gorm/postgres.
package transaction

import (
	"context"
	"errors"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

// Create implements repository.TransactionRepository.
func (r *repo) Create(ctx context.Context, create dto.TransactionCreate) error {
	t := Transaction{
		ID:             create.ID,
		StudentID:      create.StudentID,
		VendorID:       create.VendorID,
		Amount:         create.Amount,
		Type:           create.Type,
		Description:    create.Description,
		Status:         create.Status,
		StudentBalance: create.StudentBalance,
		VendorBalance:  create.VendorBalance,
	}
	if create.ExternalOrderID != "" {
		orderID := create.ExternalOrderID
		t.ExternalOrderID = &orderID
	}
	return r.db.WithContext(ctx).Create(&t).Error
}

// Get implements repository.TransactionRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var t Transaction
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&t), nil
}

// GetByOrderID implements repository.TransactionRepository. The FOR
// UPDATE lock makes two completions racing on the same order queue up
// behind each other; the loser then sees status != pending.
func (r *repo) GetByOrderID(ctx context.Context, orderID string) (*dto.TransactionRead, error) {
	var t Transaction
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "external_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&t), nil
}

// MarkCompleted implements repository.TransactionRepository. The status
// guard is part of the UPDATE's WHERE clause: replaying a completion for
// an already-settled entry affects zero rows and reports false, which is
// how the recharge workflow detects "already processed".
func (r *repo) MarkCompleted(ctx context.Context, id uuid.UUID, settle dto.TransactionSettle) (bool, error) {
	updates := map[string]any{
		"status":       string(domain.StatusCompleted),
		"payment_id":   settle.PaymentID,
		"completed_at": settle.CompletedAt,
	}
	if settle.StudentBalance != nil {
		updates["student_balance"] = *settle.StudentBalance
	}
	if settle.VendorBalance != nil {
		updates["vendor_balance"] = *settle.VendorBalance
	}
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByStudent implements repository.TransactionRepository.
func (r *repo) ListByStudent(ctx context.Context, studentID string) ([]*dto.TransactionRead, error) {
	var ts []Transaction
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&ts).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(ts), nil
}

// ListByVendor implements repository.TransactionRepository.
func (r *repo) ListByVendor(ctx context.Context, vendorID string) ([]*dto.TransactionRead, error) {
	var ts []Transaction
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&ts).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(ts), nil
}

func mapModelsToDTOs(ts []Transaction) []*dto.TransactionRead {
	result := make([]*dto.TransactionRead, 0, len(ts))
	for i := range ts {
		result = append(result, mapModelToDTO(&ts[i]))
	}
	return result
}

// mapModelToDTO maps a gorm model to a read-optimized DTO.
func mapModelToDTO(t *Transaction) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:             t.ID,
		StudentID:      t.StudentID,
		VendorID:       t.VendorID,
		Amount:         t.Amount,
		Type:           t.Type,
		Description:    t.Description,
		Status:         t.Status,
		PaymentID:      t.PaymentID,
		StudentBalance: t.StudentBalance,
		VendorBalance:  t.VendorBalance,
		CreatedAt:      t.CreatedAt,
		CompletedAt:    t.CompletedAt,
	}
	if t.ExternalOrderID != nil {
		read.ExternalOrderID = *t.ExternalOrderID
	}
	return read
}
