package student

import (
	"time"
)

// Student is the database record for a prepaid wallet holder. Balance is
// stored in minor units (paise).
type Student struct {
	ID        uint   `gorm:"primaryKey"`
	StudentID string `gorm:"uniqueIndex;size:32;not null"`
	Name      string `gorm:"size:128;not null"`
	Balance   int64  `gorm:"not null;default:0"`
	ParentID  string `gorm:"size:32"`
	Class     string `gorm:"size:16"`
	Section   string `gorm:"size:8"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Student model.
func (Student) TableName() string {
	return "students"
}
