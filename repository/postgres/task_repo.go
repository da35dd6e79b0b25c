package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

const taskColumns = `
	id, user_id, title, description, priority, status,
	estimated_duration, scheduled_start, scheduled_end,
	actual_start, actual_end, tags, metadata, created_at, updated_at`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR priority = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query,
		filter.UserID, filter.Status, filter.Priority,
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) ListBacklog(ctx context.Context, userID string) ([]domain.Task, error) {
	// Insertion order: the scorer's tie-break relies on this exact ordering.
	query := `SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1 AND status IN ('pending', 'in_progress')
	ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, priority, status, estimated_duration, tags, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.EstimatedDuration,
		task.Tags,
		marshalMap(task.Metadata),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, storageError(err)
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		priority = $4,
		status = $5,
		estimated_duration = $6,
		actual_start = $7,
		actual_end = $8,
		tags = $9,
		metadata = $10,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.EstimatedDuration,
		task.ActualStart,
		task.ActualEnd,
		task.Tags,
		marshalMap(task.Metadata),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return storageError(err)
	}

	return nil
}

func (r *taskRepository) SetScheduledWindow(ctx context.Context, id string, start, end *time.Time) error {
	const query = `
	UPDATE tasks
	SET scheduled_start = $2, scheduled_end = $3, updated_at = NOW()
	WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, start, end)
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storageError(err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, storageError(rows.Err())
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var metadata []byte

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&task.EstimatedDuration,
		&task.ScheduledStart,
		&task.ScheduledEnd,
		&task.ActualStart,
		&task.ActualEnd,
		&task.Tags,
		&metadata,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, storageError(err)
	}

	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &task.Metadata)
	}

	return &task, nil
}
