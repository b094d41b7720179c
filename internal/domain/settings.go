// internal/domain/settings.go
package domain

import "time"

// UserSettings holds per-user preferences. Currency is stored and returned
// opaquely; formatting happens in the UI layer.
type UserSettings struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Currency  string    `db:"currency" json:"currency"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewUserSettings creates settings for a user with the default currency.
func NewUserSettings(userID string) *UserSettings {
	now := time.Now().UTC()
	return &UserSettings{
		UserID:    userID,
		Currency:  DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
