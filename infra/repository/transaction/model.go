package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the database record for one ledger entry. Amounts and
// balance snapshots are in minor units. ExternalOrderID is a nullable
// unique column: NULL for purchases, unique per gateway order for
// recharges.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID       string    `gorm:"index;size:32"`
	VendorID        string    `gorm:"index;size:32;not null"`
	Amount          int64     `gorm:"not null"`
	Type            string    `gorm:"size:16;not null"`
	Description     string    `gorm:"size:256"`
	Status          string    `gorm:"size:16;not null;index"`
	ExternalOrderID *string   `gorm:"uniqueIndex;size:64"`
	PaymentID       string    `gorm:"size:64"`
	StudentBalance  *int64
	VendorBalance   *int64
	CreatedAt       time.Time `gorm:"index"`
	CompletedAt     *time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
