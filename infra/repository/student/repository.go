// Package student implements the student repository over gorm/postgres.
package student

import (
	"context"
	"errors"

	"github.com/campuspay/backend/pkg/domain"
	"github.com/campuspay/backend/pkg/dto"
	"github.com/campuspay/backend/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates a student repository using the provided *gorm.DB.
func New(db *gorm.DB) repository.StudentRepository {
	return &repo{db: db}
}

// Get implements repository.StudentRepository.
func (r *repo) Get(ctx context.Context, studentID string) (*dto.StudentRead, error) {
	var s Student
	if err := r.db.WithContext(ctx).First(&s, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&s), nil
}

// Create implements repository.StudentRepository.
func (r *repo) Create(ctx context.Context, create dto.StudentCreate) error {
	s := Student{
		StudentID: create.StudentID,
		Name:      create.Name,
		Balance:   create.Balance,
		ParentID:  create.ParentID,
		Class:     create.Class,
		Section:   create.Section,
	}
	return r.db.WithContext(ctx).Create(&s).Error
}

// DebitIfSufficient implements repository.StudentRepository. The balance
// guard and the decrement are a single UPDATE, so two racing purchases
// can never both pass the check against the same rupees.
func (r *repo) DebitIfSufficient(ctx context.Context, studentID string, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Student{}).
		Where("student_id = ? AND balance >= ?", studentID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Zero rows: either the student is gone or the guard failed.
	var count int64
	if err := r.db.WithContext(ctx).Model(&Student{}).
		Where("student_id = ?", studentID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, domain.ErrStudentNotFound
	}
	return false, nil
}

// Credit implements repository.StudentRepository.
func (r *repo) Credit(ctx context.Context, studentID string, amount int64) error {
	res := r.db.WithContext(ctx).
		Model(&Student{}).
		Where("student_id = ?", studentID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// mapModelToDTO maps a gorm model to a read-optimized DTO.
func mapModelToDTO(s *Student) *dto.StudentRead {
	return &dto.StudentRead{
		StudentID: s.StudentID,
		Name:      s.Name,
		Balance:   s.Balance,
		ParentID:  s.ParentID,
		Class:     s.Class,
		Section:   s.Section,
		CreatedAt: s.CreatedAt,
	}
}
