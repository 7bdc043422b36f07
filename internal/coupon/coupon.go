// Package coupon generates the short codes and OTPs that identify ledger coupons.
package coupon

// Generator produces coupon codes and OTPs that are not already in use.
type Generator interface {
	// NextCode returns a short code absent from existing.
	// It fails with model.ErrGenerationExhausted after a bounded number of attempts.
	NextCode(existing CodeSet) (string, error)

	// NextOTP returns a 6-digit numeric OTP absent from existing.
	// It fails with model.ErrGenerationExhausted after a bounded number of attempts.
	NextOTP(existing CodeSet) (string, error)
}

// CodeSet represents a set of codes or OTPs for fast lookup.
type CodeSet interface {
	// Contains checks if a value exists in the set.
	Contains(code string) bool

	// Add records a value as used.
	Add(code string)

	// Size returns the number of values in the set.
	Size() int
}
