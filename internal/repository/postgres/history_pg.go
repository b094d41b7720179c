// internal/repository/postgres/history_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"

	"github.com/jmoiron/sqlx"
)

// HistoryRepository implements repository.HistoryRepository for PostgreSQL.
//
// Increments and decrements are expressed in SQL so they are atomic at the
// storage layer; concurrent writers to the same bucket never lose an update
// to an application-level read-modify-write.
type HistoryRepository struct {
	// No state; methods receive a DBExecutor directly
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sqlx.DB) repository.HistoryRepository {
	return &HistoryRepository{}
}

// UpsertMonthDelta creates the monthly bucket seeded with the delta, or
// increments the existing row's fields by it.
func (r *HistoryRepository) UpsertMonthDelta(ctx context.Context, q repository.DBExecutor, userID string, year, month int, delta domain.RollupDelta) error {
	query := `
		INSERT INTO month_history (user_id, year, month, income, expense)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			income  = month_history.income  + EXCLUDED.income,
			expense = month_history.expense + EXCLUDED.expense`
	_, err := q.ExecContext(ctx, query, userID, year, month, delta.Income, delta.Expense)
	if err != nil {
		return fmt.Errorf("failed to upsert month history (%d, %d): %w", year, month, err)
	}
	return nil
}

// UpsertYearDelta creates the yearly bucket seeded with the delta, or
// increments the existing row's fields by it.
func (r *HistoryRepository) UpsertYearDelta(ctx context.Context, q repository.DBExecutor, userID string, year int, delta domain.RollupDelta) error {
	query := `
		INSERT INTO year_history (user_id, year, income, expense)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year) DO UPDATE SET
			income  = year_history.income  + EXCLUDED.income,
			expense = year_history.expense + EXCLUDED.expense`
	_, err := q.ExecContext(ctx, query, userID, year, delta.Income, delta.Expense)
	if err != nil {
		return fmt.Errorf("failed to upsert year history %d: %w", year, err)
	}
	return nil
}

// DecrementMonth subtracts the delta from an existing monthly bucket.
// A missing bucket is surfaced as util.ErrRollupMissing.
func (r *HistoryRepository) DecrementMonth(ctx context.Context, q repository.DBExecutor, userID string, year, month int, delta domain.RollupDelta) error {
	query := `
		UPDATE month_history SET
			income  = income  - $4,
			expense = expense - $5
		WHERE user_id = $1 AND year = $2 AND month = $3`
	result, err := q.ExecContext(ctx, query, userID, year, month, delta.Income, delta.Expense)
	if err != nil {
		return fmt.Errorf("failed to decrement month history (%d, %d): %w", year, month, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after decrementing month history (%d, %d): %w", year, month, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("month history (%d, %d) for user %s: %w", year, month, userID, util.ErrRollupMissing)
	}
	return nil
}

// DecrementYear subtracts the delta from an existing yearly bucket.
// A missing bucket is surfaced as util.ErrRollupMissing.
func (r *HistoryRepository) DecrementYear(ctx context.Context, q repository.DBExecutor, userID string, year int, delta domain.RollupDelta) error {
	query := `
		UPDATE year_history SET
			income  = income  - $3,
			expense = expense - $4
		WHERE user_id = $1 AND year = $2`
	result, err := q.ExecContext(ctx, query, userID, year, delta.Income, delta.Expense)
	if err != nil {
		return fmt.Errorf("failed to decrement year history %d: %w", year, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after decrementing year history %d: %w", year, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("year history %d for user %s: %w", year, userID, util.ErrRollupMissing)
	}
	return nil
}

// GetMonthHistory retrieves one monthly rollup row.
func (r *HistoryRepository) GetMonthHistory(ctx context.Context, q repository.DBExecutor, userID string, year, month int) (*domain.MonthHistory, error) {
	var history domain.MonthHistory
	query := `SELECT user_id, year, month, income, expense FROM month_history
              WHERE user_id = $1 AND year = $2 AND month = $3`
	err := q.GetContext(ctx, &history, query, userID, year, month)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get month history (%d, %d): %w", year, month, err)
	}
	return &history, nil
}

// GetYearHistory retrieves one yearly rollup row.
func (r *HistoryRepository) GetYearHistory(ctx context.Context, q repository.DBExecutor, userID string, year int) (*domain.YearHistory, error) {
	var history domain.YearHistory
	query := `SELECT user_id, year, income, expense FROM year_history
              WHERE user_id = $1 AND year = $2`
	err := q.GetContext(ctx, &history, query, userID, year)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get year history %d: %w", year, err)
	}
	return &history, nil
}

// ListMonthsOfYear retrieves the monthly rollups of one year, ordered by month.
func (r *HistoryRepository) ListMonthsOfYear(ctx context.Context, q repository.DBExecutor, userID string, year int) ([]domain.MonthHistory, error) {
	histories := []domain.MonthHistory{}
	query := `SELECT user_id, year, month, income, expense FROM month_history
              WHERE user_id = $1 AND year = $2 ORDER BY month ASC`
	if err := q.SelectContext(ctx, &histories, query, userID, year); err != nil {
		return nil, fmt.Errorf("failed to list month history for year %d: %w", year, err)
	}
	return histories, nil
}

// ListPeriods retrieves the distinct years present in the monthly rollups, ascending.
func (r *HistoryRepository) ListPeriods(ctx context.Context, q repository.DBExecutor, userID string) ([]int, error) {
	years := []int{}
	query := `SELECT DISTINCT year FROM month_history WHERE user_id = $1 ORDER BY year ASC`
	if err := q.SelectContext(ctx, &years, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list history periods: %w", err)
	}
	return years, nil
}
