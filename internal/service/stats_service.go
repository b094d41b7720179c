// internal/service/stats_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"

	"github.com/shopspring/decimal"
)

// Timeframe selects the granularity of history chart data.
type Timeframe string

const (
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// BalanceStats holds the income/expense totals of a date range. The balance
// itself is computed by the caller as income - expense.
type BalanceStats struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// HistoryPoint is one bar of the overview chart: a month of a year, or a day
// of a month when Day is set.
type HistoryPoint struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"` // 0-based
	Day     *int            `json:"day,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// StatsService exposes the reporting read paths. These never mutate state;
// they observe whatever the aggregate engine last committed.
type StatsService interface {
	Balance(ctx context.Context, userID string, from, to time.Time) (*BalanceStats, error)
	Categories(ctx context.Context, userID string, from, to time.Time) ([]repository.CategoryTotal, error)
	Periods(ctx context.Context, userID string) ([]int, error)
	History(ctx context.Context, userID string, timeframe Timeframe, year, month int) ([]HistoryPoint, error)
}

// statsService implements the StatsService interface.
type statsService struct {
	dbExecutor      repository.DBExecutor
	transactionRepo repository.TransactionRepository
	historyRepo     repository.HistoryRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(
	dbExecutor repository.DBExecutor,
	transactionRepo repository.TransactionRepository,
	historyRepo repository.HistoryRepository,
) StatsService {
	return &statsService{
		dbExecutor:      dbExecutor,
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
	}
}

// Balance returns the income and expense totals over [from, to].
func (s *statsService) Balance(ctx context.Context, userID string, from, to time.Time) (*BalanceStats, error) {
	income, expense, err := s.transactionRepo.SumByType(ctx, s.dbExecutor, userID, domain.UTCDate(from), domain.UTCDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get balance stats: %w", err)
	}
	return &BalanceStats{Income: income, Expense: expense}, nil
}

// Categories returns totals grouped by (type, category) over [from, to].
func (s *statsService) Categories(ctx context.Context, userID string, from, to time.Time) ([]repository.CategoryTotal, error) {
	totals, err := s.transactionRepo.SumByCategory(ctx, s.dbExecutor, userID, domain.UTCDate(from), domain.UTCDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}
	return totals, nil
}

// Periods returns the distinct years the user has rollup data for.
func (s *statsService) Periods(ctx context.Context, userID string) ([]int, error) {
	years, err := s.historyRepo.ListPeriods(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history periods: %w", err)
	}
	return years, nil
}

// History returns chart series for one period. The year timeframe reads the
// twelve monthly rollups; the month timeframe has no per-day rollup, so it
// aggregates the ledger by day. Missing buckets are zero-filled so the chart
// always gets a full series.
func (s *statsService) History(ctx context.Context, userID string, timeframe Timeframe, year, month int) ([]HistoryPoint, error) {
	switch timeframe {
	case TimeframeYear:
		return s.yearHistory(ctx, userID, year)
	case TimeframeMonth:
		return s.monthHistory(ctx, userID, year, month)
	default:
		return nil, fmt.Errorf("timeframe must be month or year: %w", util.ErrInvalidInput)
	}
}

func (s *statsService) yearHistory(ctx context.Context, userID string, year int) ([]HistoryPoint, error) {
	months, err := s.historyRepo.ListMonthsOfYear(ctx, s.dbExecutor, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get year history: %w", err)
	}

	byMonth := make(map[int]domain.MonthHistory, len(months))
	for _, m := range months {
		byMonth[m.Month] = m
	}

	points := make([]HistoryPoint, 0, 12)
	for m := 0; m < 12; m++ {
		point := HistoryPoint{Year: year, Month: m, Income: decimal.Zero, Expense: decimal.Zero}
		if h, ok := byMonth[m]; ok {
			point.Income = h.Income
			point.Expense = h.Expense
		}
		points = append(points, point)
	}
	return points, nil
}

func (s *statsService) monthHistory(ctx context.Context, userID string, year, month int) ([]HistoryPoint, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month must be in [0, 11]: %w", util.ErrInvalidInput)
	}

	days, err := s.transactionRepo.SumByDay(ctx, s.dbExecutor, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get month history: %w", err)
	}

	byDay := make(map[int]repository.DayTotal, len(days))
	for _, d := range days {
		byDay[d.Day] = d
	}

	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	points := make([]HistoryPoint, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := d
		point := HistoryPoint{Year: year, Month: month, Day: &day, Income: decimal.Zero, Expense: decimal.Zero}
		if t, ok := byDay[d]; ok {
			point.Income = t.Income
			point.Expense = t.Expense
		}
		points = append(points, point)
	}
	return points, nil
}
