// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// CategoryTotal is the aggregate of one (type, category) group in a date range.
type CategoryTotal struct {
	Type         domain.TransactionType `db:"type" json:"type"`
	Category     string                 `db:"category" json:"category"`
	CategoryIcon string                 `db:"category_icon" json:"category_icon"`
	Total        decimal.Decimal        `db:"total" json:"total"`
}

// DayTotal is the income/expense sum of one calendar day, used for
// month-granularity chart data.
type DayTotal struct {
	Day     int             `db:"day" json:"day"`
	Income  decimal.Decimal `db:"income" json:"income"`
	Expense decimal.Decimal `db:"expense" json:"expense"`
}

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new ledger row using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a transaction scoped to its owner.
	// A row owned by a different user is reported as not found.
	GetTransactionByID(ctx context.Context, q DBExecutor, userID, id string) (*domain.Transaction, error)
	// DeleteTransaction removes a transaction scoped to its owner.
	DeleteTransaction(ctx context.Context, q DBExecutor, userID, id string) error
	// ListTransactions retrieves transactions in [from, to], newest first, paginated.
	ListTransactions(ctx context.Context, q DBExecutor, userID string, from, to time.Time, limit, offset int) ([]domain.Transaction, int64, error)
	// SumByType returns the income and expense totals over [from, to].
	SumByType(ctx context.Context, q DBExecutor, userID string, from, to time.Time) (income, expense decimal.Decimal, err error)
	// SumByCategory returns totals grouped by (type, category) over [from, to].
	SumByCategory(ctx context.Context, q DBExecutor, userID string, from, to time.Time) ([]CategoryTotal, error)
	// SumByDay returns per-day totals for one (year, 0-based month) bucket.
	SumByDay(ctx context.Context, q DBExecutor, userID string, year, month int) ([]DayTotal, error)
}
