package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation of
// NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) repository.NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return domain.ErrInvalidPayload
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO notifications (id, user_id, task_id, type, title, message, scheduled_for, channels)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		n.ID,
		n.UserID,
		n.TaskID,
		n.Type,
		n.Title,
		n.Message,
		n.ScheduledFor,
		n.Channels,
	).Scan(&n.CreatedAt)
}

func (r *notificationRepository) ListPending(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	const query = `
	SELECT id, user_id, task_id, type, title, message, scheduled_for, channels, sent_at, created_at
	FROM notifications
	WHERE user_id = $1 AND sent_at IS NULL
	ORDER BY scheduled_for ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.TaskID, &n.Type, &n.Title, &n.Message,
			&n.ScheduledFor, &n.Channels, &n.SentAt, &n.CreatedAt,
		); err != nil {
			return nil, storageError(err)
		}
		notifications = append(notifications, n)
	}
	return notifications, storageError(rows.Err())
}

func (r *notificationRepository) MarkSent(ctx context.Context, id string) error {
	const query = `UPDATE notifications SET sent_at = NOW() WHERE id = $1 AND sent_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.ErrCodeNotFound, "notification not found or already sent")
	}
	return nil
}
