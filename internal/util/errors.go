// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrRollupMissing indicates a ledger row exists whose rollup bucket is
	// gone. Buckets are created together with the first transaction that
	// touches them, so this means prior corruption, not user error.
	ErrRollupMissing = errors.New("rollup row missing for existing transaction")
)

// IsError reports whether err matches the target sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
