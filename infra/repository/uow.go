// Package repository provides the gorm-backed UnitOfWork binding the
// per-entity repositories to one database session.
package repository

import (
	"context"

	"github.com/campuspay/backend/infra/repository/student"
	"github.com/campuspay/backend/infra/repository/transaction"
	"github.com/campuspay/backend/infra/repository/vendor"
	"github.com/campuspay/backend/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Every repository obtained from the UoW handed to Do shares
// the same gorm transaction, so a debit, a credit and a ledger insert
// either all commit or all roll back.
type UoW struct {
	db *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a gorm transaction, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

// Students returns the student repository bound to this session.
func (u *UoW) Students() repository.StudentRepository {
	return student.New(u.db)
}

// Vendors returns the vendor repository bound to this session.
func (u *UoW) Vendors() repository.VendorRepository {
	return vendor.New(u.db)
}

// Transactions returns the ledger repository bound to this session.
func (u *UoW) Transactions() repository.TransactionRepository {
	return transaction.New(u.db)
}
