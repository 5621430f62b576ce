package portfolio

import "errors"

// Sentinel errors returned by the accounting core. Callers match them with
// errors.Is; the messages carried alongside give the offending values.
var (
	// ErrInvalidTransaction is returned when a transaction is constructed
	// with a negative price or negative fees. Direction is carried by the
	// sign of the quantity, price and fees are magnitudes.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrTickerMismatch is returned when a transaction is applied to a
	// position holding a different ticker. This is a programming error and
	// is never silently corrected.
	ErrTickerMismatch = errors.New("ticker mismatch")
)
