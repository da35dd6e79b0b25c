package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository returns a Postgres-backed implementation of NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) repository.NoteRepository {
	return &noteRepository{pool: pool}
}

const noteColumns = `id, user_id, title, content, source_type, extracted_task_ids, created_at, updated_at`

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	return scanNote(r.pool.QueryRow(ctx, query, id))
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + `
	FROM notes
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, storageError(err)
		}
		notes = append(notes, *note)
	}
	return notes, storageError(rows.Err())
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO notes (id, user_id, title, content, source_type, extracted_task_ids)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.SourceType,
		note.ExtractedTaskIDs,
	).Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, storageError(err)
	}

	return note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM notes WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.SourceType,
		&note.ExtractedTaskIDs,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, storageError(err)
	}
	return &note, nil
}
