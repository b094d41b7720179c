// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the enumerated values.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single financial event in the ledger.
// Category and CategoryIcon are snapshots taken at creation time; later
// changes to the category row do not affect historical transactions.
type Transaction struct {
	ID           string          `db:"id" json:"id"`                       // UUID, system generated
	UserID       string          `db:"user_id" json:"user_id"`             // Owner, supplied by the identity boundary
	Amount       decimal.Decimal `db:"amount" json:"amount"`               // Positive amount, NUMERIC(20, 4) in DB
	Date         time.Time       `db:"date" json:"date"`                   // UTC calendar date, time of day discarded
	Description  string          `db:"description" json:"description"`     // Optional, defaults to ""
	Type         TransactionType `db:"type" json:"type"`                   // income or expense
	Category     string          `db:"category" json:"category"`           // Category name snapshot
	CategoryIcon string          `db:"category_icon" json:"category_icon"` // Category icon snapshot
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`       // Timestamp of record creation
}

// NewTransaction creates a new Transaction instance with a generated id and
// the date normalized to a UTC calendar date.
func NewTransaction(
	userID string,
	amount decimal.Decimal,
	date time.Time,
	description string,
	txType TransactionType,
	category string,
	categoryIcon string,
) *Transaction {
	return &Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Amount:       amount,
		Date:         UTCDate(date),
		Description:  description,
		Type:         txType,
		Category:     category,
		CategoryIcon: categoryIcon,
		CreatedAt:    time.Now().UTC(),
	}
}

// UTCDate truncates a timestamp to its UTC calendar date.
func UTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucket returns the rollup bucket coordinates of the transaction's date.
// The month is 0-based, matching the date's UTC month component.
func (t *Transaction) Bucket() (year, month int) {
	u := t.Date.UTC()
	return u.Year(), int(u.Month()) - 1
}
