package domain

import (
	"fmt"
	"time"

	"github.com/campuspay/backend/pkg/domain/money"
)

// Vendor is a campus store that accepts card payments and accumulates a
// settlement balance. Balance defaults to zero for vendors created before
// the balance column existed and is mutated only by credits.
type Vendor struct {
	VendorID  string
	Name      string
	UpiID     string
	StoreType string
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpiIntent renders the UPI deep-link payload encoded into the vendor's
// printed QR code. Format follows the NPCI UPI linking spec.
func (v *Vendor) UpiIntent() string {
	return UpiIntentFor(v.UpiID)
}

// UpiIntentFor renders the UPI deep-link for a raw UPI id.
func UpiIntentFor(upiID string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=Vendor&mc=0000&mode=02&purpose=00", upiID)
}
