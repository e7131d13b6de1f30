// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("account not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrAuthFailure       = errors.New("invalid username or pin")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
	ErrLoanRejected      = errors.New("loan rejected: no deposit of at least 10% of the requested amount")
	ErrDuplicateUsername = errors.New("duplicate username") // Two owners deriving the same initials
	ErrNotLoggedIn       = errors.New("no account logged in")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
