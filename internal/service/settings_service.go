// internal/service/settings_service.go
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

// SettingsService defines the business logic for user settings.
type SettingsService interface {
	// Get returns the user's settings, creating defaults on first access.
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	// UpdateCurrency validates and stores a new currency choice.
	UpdateCurrency(ctx context.Context, userID, currency string) (*domain.UserSettings, error)
}

// settingsService implements the SettingsService interface.
type settingsService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	settingsRepo repository.SettingsRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	settingsRepo repository.SettingsRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) SettingsService {
	return &settingsService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		settingsRepo: settingsRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// Get returns the user's settings, creating the default row on first access.
// The check and insert share one transaction.
func (s *settingsService) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.GetUserSettings(ctx, s.dbExecutor, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("get settings: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("get settings: transaction controller does not implement DBExecutor")
	}

	settings = domain.NewUserSettings(userID)
	if err := s.settingsRepo.CreateUserSettings(ctx, txExecutor, settings); err != nil {
		return nil, fmt.Errorf("get settings: failed to create default settings: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("get settings: failed to commit transaction: %w", err)
	}

	return settings, nil
}

// UpdateCurrency validates and stores a new currency choice, creating the
// settings row first if the user has none yet.
func (s *settingsService) UpdateCurrency(ctx context.Context, userID, currency string) (*domain.UserSettings, error) {
	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("currency '%s': %w", currency, util.ErrUnsupportedCurrency)
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.settingsRepo.UpdateCurrency(ctx, s.dbExecutor, userID, currency); err != nil {
		return nil, fmt.Errorf("update currency: %w", err)
	}

	settings.Currency = currency
	return settings, nil
}
