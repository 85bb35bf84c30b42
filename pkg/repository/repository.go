// Package repository defines the persistence contracts of the ledger
// store. Implementations live under infra/repository; services depend only
// on these interfaces so tests can substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/campuspay/backend/pkg/dto"
	"github.com/google/uuid"
)

// StudentRepository is the access contract for student wallet records.
type StudentRepository interface {
	// Get returns the student keyed by campus card id, or
	// domain.ErrStudentNotFound.
	Get(ctx context.Context, studentID string) (*dto.StudentRead, error)

	// Create inserts a new student record.
	Create(ctx context.Context, create dto.StudentCreate) error

	// DebitIfSufficient atomically decrements the balance by amount only
	// when the current balance covers it. The check and the write are one
	// statement; there is no read-modify-write window. Returns false when
	// the guard failed (insufficient balance), domain.ErrStudentNotFound
	// when the student does not exist.
	DebitIfSufficient(ctx context.Context, studentID string, amount int64) (bool, error)

	// Credit atomically increments the balance by amount.
	Credit(ctx context.Context, studentID string, amount int64) error
}

// VendorRepository is the access contract for vendor settlement records.
type VendorRepository interface {
	// Get returns the vendor keyed by vendor id, or domain.ErrVendorNotFound.
	Get(ctx context.Context, vendorID string) (*dto.VendorRead, error)

	// Create inserts a new vendor record.
	Create(ctx context.Context, create dto.VendorCreate) error

	// Credit atomically increments the settlement balance by amount. A
	// missing balance is treated as zero.
	Credit(ctx context.Context, vendorID string, amount int64) error
}

// TransactionRepository is the access contract for the immutable ledger.
type TransactionRepository interface {
	// Create appends a ledger entry.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Get returns the entry with the given id.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// GetByOrderID returns the entry holding the given external order id,
	// or domain.ErrOrderNotFound. Inside a UnitOfWork transaction the row
	// is locked for update, serializing concurrent completions of the
	// same order.
	GetByOrderID(ctx context.Context, orderID string) (*dto.TransactionRead, error)

	// MarkCompleted transitions the entry from pending to completed and
	// attaches settlement metadata. The transition is conditional on the
	// current status being pending; it returns false (and writes nothing)
	// when the entry already settled. This is the recharge idempotency
	// guard.
	MarkCompleted(ctx context.Context, id uuid.UUID, settle dto.TransactionSettle) (bool, error)

	// ListByStudent returns the student's entries, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*dto.TransactionRead, error)

	// ListByVendor returns the vendor's entries, newest first.
	ListByVendor(ctx context.Context, vendorID string) ([]*dto.TransactionRead, error)
}

// UnitOfWork provides a transaction boundary plus repository access bound
// to that transaction. All repositories obtained from the UnitOfWork
// passed to Do share one DB transaction, so a failure anywhere rolls back
// every mutation of the operation.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Students() StudentRepository
	Vendors() VendorRepository
	Transactions() TransactionRepository
}
