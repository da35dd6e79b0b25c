package preference

import (
	"context"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type UseCase struct {
	prefs  repository.PreferenceRepository
	logger *zap.Logger
}

func New(prefs repository.PreferenceRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		prefs:  prefs,
		logger: logger,
	}
}

// Get returns the user's preferences, materializing the defaults on
// first access.
func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	return uc.prefs.GetByUserID(ctx, userID)
}

// Update applies a full preference document after validating its
// invariants. Partial updates are assembled by the caller on top of the
// current document.
func (uc *UseCase) Update(ctx context.Context, prefs *domain.UserPreferences) (*domain.UserPreferences, error) {
	if prefs == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if err := uc.prefs.Update(ctx, prefs); err != nil {
		return nil, err
	}
	uc.logger.Info("preferences updated", zap.String("user_id", prefs.UserID))
	return prefs, nil
}
