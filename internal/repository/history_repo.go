// internal/repository/history_repo.go
package repository

import (
	"context"

	"fintrack/internal/domain"
)

// HistoryRepository defines the interface for rollup data operations.
//
// The create path uses the upsert methods: create-with-seed if the bucket is
// absent, otherwise apply the delta as an atomic increment at the storage
// layer. The delete path uses the decrement methods, which must fail with
// util.ErrRollupMissing when the bucket does not exist: a ledger row without
// its rollup is a consistency violation, never a silent no-op.
type HistoryRepository interface {
	UpsertMonthDelta(ctx context.Context, q DBExecutor, userID string, year, month int, delta domain.RollupDelta) error
	UpsertYearDelta(ctx context.Context, q DBExecutor, userID string, year int, delta domain.RollupDelta) error
	DecrementMonth(ctx context.Context, q DBExecutor, userID string, year, month int, delta domain.RollupDelta) error
	DecrementYear(ctx context.Context, q DBExecutor, userID string, year int, delta domain.RollupDelta) error

	// GetMonthHistory retrieves one monthly rollup row.
	GetMonthHistory(ctx context.Context, q DBExecutor, userID string, year, month int) (*domain.MonthHistory, error)
	// GetYearHistory retrieves one yearly rollup row.
	GetYearHistory(ctx context.Context, q DBExecutor, userID string, year int) (*domain.YearHistory, error)
	// ListMonthsOfYear retrieves the monthly rollups of one year, ordered by month.
	ListMonthsOfYear(ctx context.Context, q DBExecutor, userID string, year int) ([]domain.MonthHistory, error)
	// ListPeriods retrieves the distinct years present in the monthly rollups, ascending.
	ListPeriods(ctx context.Context, q DBExecutor, userID string) ([]int, error)
}
