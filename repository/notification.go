package repository

import (
	"context"

	"github.com/planday/backend/domain"
)

type NotificationRepository interface {
	Insert(ctx context.Context, notification *domain.Notification) error
	ListPending(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id string) error
}
