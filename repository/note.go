package repository

import (
	"context"

	"github.com/planday/backend/domain"
)

type NoteFilter struct {
	UserID string
	Limit  int
	Offset int
}

type NoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, filter NoteFilter) ([]domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}
