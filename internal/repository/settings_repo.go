// internal/repository/settings_repo.go
package repository

import (
	"context"

	"fintrack/internal/domain"
)

// SettingsRepository defines the interface for user settings data operations.
type SettingsRepository interface {
	// CreateUserSettings inserts a settings row using the provided DBExecutor.
	CreateUserSettings(ctx context.Context, q DBExecutor, settings *domain.UserSettings) error
	// GetUserSettings retrieves the settings row for a user.
	GetUserSettings(ctx context.Context, q DBExecutor, userID string) (*domain.UserSettings, error)
	// UpdateCurrency changes the stored currency for a user.
	UpdateCurrency(ctx context.Context, q DBExecutor, userID, currency string) error
}
