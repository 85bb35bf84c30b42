// Package dto defines the data-transfer objects crossing the repository
// boundary. Repositories accept and return DTOs so the gorm models stay an
// implementation detail of the infra layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// StudentRead is a read-optimized projection of a student record.
// Balance is in minor units (paise).
type StudentRead struct {
	StudentID string
	Name      string
	Balance   int64
	ParentID  string
	Class     string
	Section   string
	CreatedAt time.Time
}

// VendorRead is a read-optimized projection of a vendor record.
type VendorRead struct {
	VendorID  string
	Name      string
	UpiID     string
	StoreType string
	Balance   int64
	CreatedAt time.Time
}

// StudentCreate carries the fields needed to insert a student.
type StudentCreate struct {
	StudentID string
	Name      string
	Balance   int64
	ParentID  string
	Class     string
	Section   string
}

// VendorCreate carries the fields needed to insert a vendor.
type VendorCreate struct {
	VendorID  string
	Name      string
	UpiID     string
	StoreType string
	Balance   int64
}

// TransactionCreate carries the fields needed to insert a ledger entry.
type TransactionCreate struct {
	ID              uuid.UUID
	StudentID       string
	VendorID        string
	Amount          int64
	Type            string
	Description     string
	Status          string
	ExternalOrderID string
	StudentBalance  *int64
	VendorBalance   *int64
}

// TransactionSettle carries the completion metadata attached when a
// pending recharge entry settles.
type TransactionSettle struct {
	PaymentID      string
	CompletedAt    time.Time
	StudentBalance *int64
	VendorBalance  *int64
}

// TransactionRead is a read-optimized projection of a ledger entry.
type TransactionRead struct {
	ID              uuid.UUID
	StudentID       string
	VendorID        string
	Amount          int64
	Type            string
	Description     string
	Status          string
	ExternalOrderID string
	PaymentID       string
	StudentBalance  *int64
	VendorBalance   *int64
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
