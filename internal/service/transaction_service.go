// internal/service/transaction_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"

	"github.com/shopspring/decimal"
)

// CreateTransactionInput carries the caller-supplied fields of a new
// transaction. The owning user id is threaded separately: identity is
// resolved at the boundary, never inside the engine.
type CreateTransactionInput struct {
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Type        domain.TransactionType `json:"type"`
}

// Validate checks the input shape before any store is touched.
func (in CreateTransactionInput) Validate() error {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive: %w", util.ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("type must be income or expense: %w", util.ErrInvalidInput)
	}
	if in.Category == "" {
		return fmt.Errorf("category is required: %w", util.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("date is required: %w", util.ErrInvalidInput)
	}
	return nil
}

// TransactionService is the aggregate engine: it keeps the transaction
// ledger and the monthly/yearly rollups consistent under a single atomic
// unit per operation.
type TransactionService interface {
	// Create records a transaction and applies its contribution to both
	// rollup buckets, all-or-nothing.
	Create(ctx context.Context, userID string, input CreateTransactionInput) (*domain.Transaction, error)
	// Delete removes a transaction and applies the inverse of its original
	// contribution to both rollup buckets, all-or-nothing.
	Delete(ctx context.Context, userID, transactionID string) error
	// List retrieves the user's transactions in [from, to], newest first.
	List(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]domain.Transaction, int64, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	categoryRepo    repository.CategoryRepository
	transactionRepo repository.TransactionRepository
	historyRepo     repository.HistoryRepository
	beginTx         db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx        db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx      db.RollbackTxFunc // Injected dependency for rolling back transactions
	logger          *slog.Logger
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	categoryRepo repository.CategoryRepository,
	transactionRepo repository.TransactionRepository,
	historyRepo repository.HistoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
	}
}

// Create validates the input, resolves the category and performs the
// three-way write (ledger insert, month upsert, year upsert) inside one
// database transaction.
func (s *transactionService) Create(ctx context.Context, userID string, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create transaction: transaction controller does not implement DBExecutor")
	}

	// Resolve the category inside the same transaction so a concurrent
	// category delete cannot slip between lookup and use.
	category, err := s.categoryRepo.GetCategory(ctx, txExecutor, userID, input.Category)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("create transaction: category '%s': %w", input.Category, util.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("create transaction: failed to resolve category: %w", err)
	}

	transaction := domain.NewTransaction(
		userID,
		input.Amount,
		input.Date,
		input.Description,
		input.Type,
		category.Name,
		category.Icon,
	)

	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: failed to insert ledger row: %w", err)
	}

	year, month := transaction.Bucket()
	delta := domain.DeltaFor(transaction.Type, transaction.Amount)

	if err := s.historyRepo.UpsertMonthDelta(ctx, txExecutor, userID, year, month, delta); err != nil {
		return nil, fmt.Errorf("create transaction: failed to update month rollup: %w", err)
	}
	if err := s.historyRepo.UpsertYearDelta(ctx, txExecutor, userID, year, delta); err != nil {
		return nil, fmt.Errorf("create transaction: failed to update year rollup: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transaction: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Delete reads the full pre-image of the transaction before deleting it: the
// rollup decrements are the inverse of the original increments, derived from
// the stored amount, type and date, not recomputed from scratch.
func (s *transactionService) Delete(ctx context.Context, userID, transactionID string) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete transaction: transaction controller does not implement DBExecutor")
	}

	transaction, err := s.transactionRepo.GetTransactionByID(ctx, txExecutor, userID, transactionID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return fmt.Errorf("delete transaction %s: %w", transactionID, util.ErrTransactionNotFound)
		}
		return fmt.Errorf("delete transaction: failed to get transaction %s: %w", transactionID, err)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, txExecutor, userID, transactionID); err != nil {
		return fmt.Errorf("delete transaction: failed to delete ledger row %s: %w", transactionID, err)
	}

	year, month := transaction.Bucket()
	delta := domain.DeltaFor(transaction.Type, transaction.Amount)

	if err := s.historyRepo.DecrementMonth(ctx, txExecutor, userID, year, month, delta); err != nil {
		s.reportIfCorrupt(err, userID, transactionID)
		return fmt.Errorf("delete transaction: failed to update month rollup: %w", err)
	}
	if err := s.historyRepo.DecrementYear(ctx, txExecutor, userID, year, delta); err != nil {
		s.reportIfCorrupt(err, userID, transactionID)
		return fmt.Errorf("delete transaction: failed to update year rollup: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete transaction: failed to commit transaction: %w", err)
	}

	return nil
}

// reportIfCorrupt logs a rollup-missing error as an invariant breach. The
// ledger row existed, so its bucket must too; this indicates prior
// corruption and is never swallowed.
func (s *transactionService) reportIfCorrupt(err error, userID, transactionID string) {
	if errors.Is(err, util.ErrRollupMissing) {
		s.logger.Error("rollup row missing for existing transaction; stores are inconsistent",
			"user_id", userID,
			"transaction_id", transactionID,
			"error", err,
		)
	}
}

// List retrieves a paginated list of the user's transactions in [from, to].
func (s *transactionService) List(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions, totalCount, err := s.transactionRepo.ListTransactions(
		ctx, s.dbExecutor, userID, domain.UTCDate(from), domain.UTCDate(to), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return transactions, totalCount, nil
}
