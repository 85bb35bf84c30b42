// Package domain holds the core entities of the campus payment system and
// the invariants the services enforce over them.
package domain

import (
	"time"

	"github.com/campuspay/backend/pkg/domain/money"
)

// Student is a prepaid wallet holder identified by a campus-issued card id.
//
// Invariants:
//   - Balance is denominated in the wallet currency's minor units and
//     never goes negative as the result of a purchase.
//   - Balance is mutated only by the transfer engine (debit) and by
//     recharge completion (credit).
//   - Students are never deleted in normal operation.
type Student struct {
	StudentID string
	Name      string
	Balance   money.Money
	ParentID  string
	Class     string
	Section   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanAfford reports whether a purchase of the given amount would leave the
// balance non-negative.
func (s *Student) CanAfford(amount money.Money) bool {
	return s.Balance.IsSameCurrency(amount) && s.Balance.Amount() >= amount.Amount()
}
