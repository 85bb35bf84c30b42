// Package currency holds the currency metadata the payment system needs.
// The campus wallet is single-currency (INR); the table carries a handful
// of codes so Money stays honest about formats without dragging in a full
// ISO registry.
package currency

import (
	"fmt"
	"unicode"
)

const (
	// DefaultCurrency is the wallet currency. Every balance, ledger row
	// and gateway order in the system is denominated in it.
	DefaultCurrency = "INR"
	// DefaultDecimals is the number of decimal places assumed for codes
	// missing from the metadata table.
	DefaultDecimals = 2
)

// Code represents an ISO 4217 currency code (e.g., "INR").
type Code string

// INR is the Indian Rupee, the system default.
const INR = Code("INR")

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var currencies = map[Code]Meta{
	"INR": {Decimals: 2, Symbol: "₹"},
	"USD": {Decimals: 2, Symbol: "$"},
	"EUR": {Decimals: 2, Symbol: "€"},
}

// IsValidFormat reports whether code looks like an ISO 4217 code:
// exactly three uppercase letters.
func IsValidFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsUpper(r) || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsSupported reports whether the code is present in the metadata table.
func IsSupported(code string) bool {
	_, ok := currencies[Code(code)]
	return ok
}

// Get returns metadata for the given code, or an error for codes that are
// malformed or not registered.
func Get(code string) (Meta, error) {
	if !IsValidFormat(code) {
		return Meta{}, fmt.Errorf("invalid currency code format: %q", code)
	}
	meta, ok := currencies[Code(code)]
	if !ok {
		return Meta{}, fmt.Errorf("unsupported currency: %s", code)
	}
	return meta, nil
}
