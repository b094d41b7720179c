// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// No state; methods receive a DBExecutor directly
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new ledger row using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, amount, date, description, type, category, category_icon, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.Amount,
		transaction.Date,
		transaction.Description,
		transaction.Type,
		transaction.Category,
		transaction.CategoryIcon,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction scoped to its owner using the provided DBExecutor.
// The user scope makes a foreign transaction indistinguishable from a missing one.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, userID, id string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT id, user_id, amount, date, description, type, category, category_icon, created_at
              FROM transactions WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &transaction, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction scoped to its owner using the provided DBExecutor.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, userID, id string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	result, err := q.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transaction %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListTransactions retrieves a paginated list of transactions in [from, to], newest first.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, userID string, from, to time.Time, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	query := `
		SELECT id, user_id, amount, date, description, type, category, category_icon, created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	err := q.SelectContext(ctx, &transactions, query, userID, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %s: %w", userID, err)
	}

	var totalCount int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3`
	err = q.GetContext(ctx, &totalCount, countQuery, userID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for user %s: %w", userID, err)
	}

	return transactions, totalCount, nil
}

// SumByType returns the income and expense totals over [from, to].
func (r *TransactionRepository) SumByType(ctx context.Context, q repository.DBExecutor, userID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var totals struct {
		Income  decimal.Decimal `db:"income"`
		Expense decimal.Decimal `db:"expense"`
	}
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)  AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3`
	if err := q.GetContext(ctx, &totals, query, userID, from, to); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions for user %s: %w", userID, err)
	}
	return totals.Income, totals.Expense, nil
}

// SumByCategory returns totals grouped by (type, category) over [from, to],
// largest totals first.
func (r *TransactionRepository) SumByCategory(ctx context.Context, q repository.DBExecutor, userID string, from, to time.Time) ([]repository.CategoryTotal, error) {
	totals := []repository.CategoryTotal{}
	query := `
		SELECT type, category, category_icon, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type, category, category_icon
		ORDER BY total DESC`
	if err := q.SelectContext(ctx, &totals, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category for user %s: %w", userID, err)
	}
	return totals, nil
}

// SumByDay returns per-day totals for one (year, 0-based month) bucket,
// ordered by day. Days with no transactions are absent from the result.
func (r *TransactionRepository) SumByDay(ctx context.Context, q repository.DBExecutor, userID string, year, month int) ([]repository.DayTotal, error) {
	totals := []repository.DayTotal{}
	query := `
		SELECT
			EXTRACT(DAY FROM date)::int AS day,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)  AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions
		WHERE user_id = $1
		  AND EXTRACT(YEAR FROM date)::int = $2
		  AND EXTRACT(MONTH FROM date)::int = $3
		GROUP BY day
		ORDER BY day ASC`
	// Postgres months are 1-based; the bucket month is 0-based.
	if err := q.SelectContext(ctx, &totals, query, userID, year, month+1); err != nil {
		return nil, fmt.Errorf("failed to sum transactions by day for user %s: %w", userID, err)
	}
	return totals, nil
}
