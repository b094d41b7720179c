// internal/repository/postgres/category_pg.go
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

// CategoryRepository implements repository.CategoryRepository for PostgreSQL.
type CategoryRepository struct {
	// No state; methods receive a DBExecutor directly
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepository{}
}

// CreateCategory inserts a new category using the provided DBExecutor.
func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `INSERT INTO categories (user_id, name, icon, type, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := q.ExecContext(ctx, query, category.UserID, category.Name, category.Icon, category.Type, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category '%s': %w", category.Name, err)
	}
	return nil
}

// GetCategory retrieves a category by (userID, name) using the provided DBExecutor.
func (r *CategoryRepository) GetCategory(ctx context.Context, q repository.DBExecutor, userID, name string) (*domain.Category, error) {
	var category domain.Category
	query := `SELECT user_id, name, icon, type, created_at FROM categories WHERE user_id = $1 AND name = $2`
	err := q.GetContext(ctx, &category, query, userID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category '%s': %w", name, err)
	}
	return &category, nil
}

// DeleteCategory removes a category by (userID, name) using the provided DBExecutor.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, userID, name string) error {
	query := `DELETE FROM categories WHERE user_id = $1 AND name = $2`
	result, err := q.ExecContext(ctx, query, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete category '%s': %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting category '%s': %w", name, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListCategories retrieves all categories for a user, optionally filtered by type.
func (r *CategoryRepository) ListCategories(ctx context.Context, q repository.DBExecutor, userID string, catType *domain.TransactionType) ([]domain.Category, error) {
	categories := []domain.Category{}

	if catType != nil {
		query := `SELECT user_id, name, icon, type, created_at FROM categories
                  WHERE user_id = $1 AND type = $2 ORDER BY name ASC`
		if err := q.SelectContext(ctx, &categories, query, userID, *catType); err != nil {
			return nil, fmt.Errorf("failed to list categories of type %s: %w", *catType, err)
		}
		return categories, nil
	}

	query := `SELECT user_id, name, icon, type, created_at FROM categories
              WHERE user_id = $1 ORDER BY name ASC`
	if err := q.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
