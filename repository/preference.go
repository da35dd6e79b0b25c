package repository

import (
	"context"

	"github.com/planday/backend/domain"
)

type PreferenceRepository interface {
	// GetByUserID returns the user's preferences, creating the default
	// row on first read (default-on-absent store contract).
	GetByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error)
	Update(ctx context.Context, prefs *domain.UserPreferences) error
}
