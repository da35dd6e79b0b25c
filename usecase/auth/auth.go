package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSession mirrors an externally verified identity into the local
// users table and opens a Redis-backed session for it.
func (uc *UseCase) CreateSession(ctx context.Context, userID, email string, ttl time.Duration) (*domain.Session, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		user = &domain.User{
			ID:     userID,
			Email:  email,
			Role:   "user",
			Status: "active",
		}
		if err := uc.users.Upsert(ctx, user); err != nil {
			return nil, err
		}
		uc.logger.Info("user provisioned on first login", zap.String("user_id", userID))
	}
	if !user.IsActive() {
		return nil, domain.NewError(domain.ErrCodeForbidden, "user is not active")
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CurrentUser returns the profile behind an authenticated request.
func (uc *UseCase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}
