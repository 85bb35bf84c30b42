package domain

import "errors"

var (
	// ErrStudentNotFound is returned when a student id does not resolve to a record.
	ErrStudentNotFound = errors.New("student not found")

	// ErrVendorNotFound is returned when a vendor id does not resolve to a record.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrOrderNotFound is returned when a gateway order id has no matching
	// ledger entry.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInsufficientBalance is returned when a purchase would drive a
	// student balance negative. The transfer is rejected whole; neither
	// balance is touched.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAmountMustBePositive is returned when a transaction amount is not positive.
	ErrAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrSignatureInvalid is returned when a payment completion callback
	// fails gateway signature verification. No balance mutation occurs.
	ErrSignatureInvalid = errors.New("payment signature invalid")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be
	// reached or answers with a server error. Nothing is persisted, so the
	// caller may safely retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
