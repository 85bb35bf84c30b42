package money

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/campuspay/backend/pkg/currency"
)

// Amount is a monetary amount as an integer in the smallest currency unit
// (paise for INR).
type Amount = int64

// Money represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit.
//   - Currency code must be a valid, supported ISO 4217 code.
//   - Arithmetic requires matching currencies.
//
// The API surface speaks major units (rupees); the gateway and the ledger
// store speak minor units. This type is the only place that conversion
// happens.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New creates Money from a major-unit amount (e.g. rupees as a float).
// Invariants enforced:
//   - Currency code must be valid and supported.
//   - Amount must not carry more decimal places than the currency allows.
//
// Returns Money or an error if any invariant is violated.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, fmt.Errorf("invalid currency code: %q", code)
	}
	minor, err := toMinorUnits(amount, string(code))
	if err != nil {
		return Money{}, err
	}
	return Money{amount: minor, currency: code}, nil
}

// NewFromMinor creates Money directly from the smallest currency unit.
// Used for hydrating stored balances and gateway amounts.
func NewFromMinor(amount int64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, fmt.Errorf("invalid currency code: %q", code)
	}
	return Money{amount: amount, currency: code}, nil
}

// Amount returns the value in the smallest currency unit.
func (m Money) Amount() Amount { return m.amount }

// AmountFloat returns the value as a float64 in major units.
func (m Money) AmountFloat() float64 {
	meta, err := currency.Get(string(m.currency))
	if err != nil {
		return float64(m.amount) / math.Pow10(currency.DefaultDecimals)
	}
	return float64(m.amount) / math.Pow10(meta.Decimals)
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code { return m.currency }

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two Money values of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Equals reports whether both currency and amount match.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// IsSameCurrency reports whether the other Money shares this currency.
func (m Money) IsSameCurrency(other Money) bool { return m.currency == other.currency }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// String returns a human-readable rendering, e.g. "150.00 INR".
func (m Money) String() string {
	meta, err := currency.Get(string(m.currency))
	if err != nil {
		return fmt.Sprintf("%d %s (minor units)", m.amount, m.currency)
	}
	return fmt.Sprintf("%.*f %s", meta.Decimals, m.AmountFloat(), m.currency)
}

// toMinorUnits converts a major-unit float to the smallest currency unit
// using big.Rat so that values like 0.1 convert without float drift.
func toMinorUnits(amount float64, code string) (int64, error) {
	meta, err := currency.Get(code)
	if err != nil {
		return 0, err
	}

	// Reject amounts with more precision than the currency carries.
	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.Split(amountStr, "."); len(parts) > 1 {
		if frac := strings.TrimRight(parts[1], "0"); len(frac) > meta.Decimals {
			return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
		}
	}

	rat, ok := new(big.Rat).SetString(fmt.Sprintf("%.*f", meta.Decimals, amount))
	if !ok {
		return 0, fmt.Errorf("invalid amount: %f", amount)
	}
	minorRat := new(big.Rat).Mul(rat, big.NewRat(int64(math.Pow10(meta.Decimals)), 1))
	if !minorRat.IsInt() {
		return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
	}
	minor := minorRat.Num()
	if !minor.IsInt64() {
		return 0, fmt.Errorf("amount exceeds maximum safe integer value")
	}
	return minor.Int64(), nil
}
