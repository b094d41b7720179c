// internal/repository/category_repo.go
package repository

import (
	"context"

	"fintrack/internal/domain"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// CreateCategory adds a new category using the provided DBExecutor.
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// GetCategory retrieves a category by (userID, name) using the provided DBExecutor.
	GetCategory(ctx context.Context, q DBExecutor, userID, name string) (*domain.Category, error)
	// DeleteCategory removes a category by (userID, name) using the provided DBExecutor.
	DeleteCategory(ctx context.Context, q DBExecutor, userID, name string) error
	// ListCategories retrieves all categories for a user, optionally filtered by type.
	ListCategories(ctx context.Context, q DBExecutor, userID string, catType *domain.TransactionType) ([]domain.Category, error)
}
