package repository

import (
	"context"
	"time"

	"github.com/planday/backend/domain"
)

type TaskFilter struct {
	UserID   string
	Status   string
	Priority string
	Limit    int
	Offset   int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	// ListBacklog returns the owner's pending and in_progress tasks in
	// insertion order (created_at, then id). The schedule engine's
	// tie-break determinism depends on this ordering being stable.
	ListBacklog(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// SetScheduledWindow writes or clears the engine-owned slot fields.
	SetScheduledWindow(ctx context.Context, id string, start, end *time.Time) error
	Delete(ctx context.Context, id string) error
}
