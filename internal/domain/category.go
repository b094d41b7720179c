// internal/domain/category.go
package domain

import "time"

// Category classifies transactions for one user. The (UserID, Name) pair is
// unique; the icon is an opaque display glyph managed by the UI.
type Category struct {
	UserID    string          `db:"user_id" json:"user_id"`
	Name      string          `db:"name" json:"name"`
	Icon      string          `db:"icon" json:"icon"`
	Type      TransactionType `db:"type" json:"type"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewCategory creates a new Category instance.
func NewCategory(userID, name, icon string, catType TransactionType) *Category {
	return &Category{
		UserID:    userID,
		Name:      name,
		Icon:      icon,
		Type:      catType,
		CreatedAt: time.Now().UTC(),
	}
}
