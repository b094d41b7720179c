// internal/service/category_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// CategoryService defines the business logic for category management.
// Deleting a category never touches historical transactions: they keep their
// creation-time name/icon snapshot.
type CategoryService interface {
	Create(ctx context.Context, userID, name, icon string, catType domain.TransactionType) (*domain.Category, error)
	Delete(ctx context.Context, userID, name string) error
	List(ctx context.Context, userID string, catType *domain.TransactionType) ([]domain.Category, error)
}

// categoryService implements the CategoryService interface.
type categoryService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	categoryRepo repository.CategoryRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	categoryRepo repository.CategoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) CategoryService {
	return &categoryService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		categoryRepo: categoryRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// Create adds a category after checking the (user, name) pair is free.
// The existence check and insert share one transaction.
func (s *categoryService) Create(ctx context.Context, userID, name, icon string, catType domain.TransactionType) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", util.ErrInvalidInput)
	}
	if !catType.Valid() {
		return nil, fmt.Errorf("category type must be income or expense: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create category: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create category: transaction controller does not implement DBExecutor")
	}

	_, err = s.categoryRepo.GetCategory(ctx, txExecutor, userID, name)
	if err == nil {
		return nil, fmt.Errorf("create category '%s': %w", name, util.ErrDuplicateCategory)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create category: failed to check existing category: %w", err)
	}

	category := domain.NewCategory(userID, name, icon, catType)
	if err := s.categoryRepo.CreateCategory(ctx, txExecutor, category); err != nil {
		return nil, fmt.Errorf("create category: failed to insert category: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create category: failed to commit transaction: %w", err)
	}

	return category, nil
}

// Delete removes a category by name.
func (s *categoryService) Delete(ctx context.Context, userID, name string) error {
	err := s.categoryRepo.DeleteCategory(ctx, s.dbExecutor, userID, name)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return fmt.Errorf("delete category '%s': %w", name, util.ErrCategoryNotFound)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// List retrieves the user's categories, optionally filtered by type.
func (s *categoryService) List(ctx context.Context, userID string, catType *domain.TransactionType) ([]domain.Category, error) {
	if catType != nil && !catType.Valid() {
		return nil, fmt.Errorf("category type must be income or expense: %w", util.ErrInvalidInput)
	}
	categories, err := s.categoryRepo.ListCategories(ctx, s.dbExecutor, userID, catType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
