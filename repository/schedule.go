package repository

import (
	"context"

	"github.com/planday/backend/domain"
)

type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	GetByOwnerDate(ctx context.Context, userID, date string) (*domain.Schedule, error)

	// UpsertByOwnerDate atomically writes the schedule keyed by
	// (UserID, Date). With ifAbsent true the write only succeeds when no
	// schedule exists yet; a generator losing that race gets the stored
	// winner back with won=false and must discard its own result. With
	// ifAbsent false the stored document is overwritten in place,
	// keeping the existing id and created_at.
	UpsertByOwnerDate(ctx context.Context, schedule *domain.Schedule, ifAbsent bool) (stored *domain.Schedule, won bool, err error)

	// Replace swaps the whole document by id, scoped to the owner.
	// Returns domain.ErrScheduleNotFound when no row matches.
	Replace(ctx context.Context, schedule *domain.Schedule) error
}
