// internal/domain/history.go
package domain

import "github.com/shopspring/decimal"

// MonthHistory is the pre-aggregated income/expense rollup for one
// (user, year, month) bucket. Month is 0-based, matching the date's UTC
// month component. Rows are created lazily by the first transaction in the
// bucket and never deleted; they may reach zero and remain.
type MonthHistory struct {
	UserID  string          `db:"user_id" json:"user_id"`
	Year    int             `db:"year" json:"year"`
	Month   int             `db:"month" json:"month"`
	Income  decimal.Decimal `db:"income" json:"income"`
	Expense decimal.Decimal `db:"expense" json:"expense"`
}

// YearHistory is the rollup one level higher, keyed by (user, year).
type YearHistory struct {
	UserID  string          `db:"user_id" json:"user_id"`
	Year    int             `db:"year" json:"year"`
	Income  decimal.Decimal `db:"income" json:"income"`
	Expense decimal.Decimal `db:"expense" json:"expense"`
}

// RollupDelta is the contribution of one transaction to a rollup row:
// the amount on the field matching its type, zero on the other.
type RollupDelta struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DeltaFor computes the rollup contribution of a transaction amount.
func DeltaFor(txType TransactionType, amount decimal.Decimal) RollupDelta {
	d := RollupDelta{Income: decimal.Zero, Expense: decimal.Zero}
	if txType == TransactionTypeIncome {
		d.Income = amount
	} else {
		d.Expense = amount
	}
	return d
}
