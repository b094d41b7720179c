// internal/repository/postgres/settings_pg.go
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
)

// SettingsRepository implements repository.SettingsRepository for PostgreSQL.
type SettingsRepository struct {
	// No state; methods receive a DBExecutor directly
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &SettingsRepository{}
}

// CreateUserSettings inserts a settings row using the provided DBExecutor.
func (r *SettingsRepository) CreateUserSettings(ctx context.Context, q repository.DBExecutor, settings *domain.UserSettings) error {
	query := `INSERT INTO user_settings (user_id, currency, created_at, updated_at)
              VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, settings.UserID, settings.Currency, settings.CreatedAt, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user settings: %w", err)
	}
	return nil
}

// GetUserSettings retrieves the settings row for a user.
func (r *SettingsRepository) GetUserSettings(ctx context.Context, q repository.DBExecutor, userID string) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	query := `SELECT user_id, currency, created_at, updated_at FROM user_settings WHERE user_id = $1`
	err := q.GetContext(ctx, &settings, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &settings, nil
}

// UpdateCurrency changes the stored currency for a user.
func (r *SettingsRepository) UpdateCurrency(ctx context.Context, q repository.DBExecutor, userID, currency string) error {
	query := `UPDATE user_settings SET currency = $1, updated_at = $2 WHERE user_id = $3`
	result, err := q.ExecContext(ctx, query, currency, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating currency: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
