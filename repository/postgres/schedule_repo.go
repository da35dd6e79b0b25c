package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a Postgres-backed implementation of
// ScheduleRepository. The UNIQUE (user_id, date) constraint is what
// turns the upsert into the single-writer primitive the engine needs.
func NewScheduleRepository(pool *pgxpool.Pool) repository.ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

const scheduleColumns = `id, user_id, to_char(date, 'YYYY-MM-DD'), entries, metadata, created_at`

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	return scanSchedule(r.pool.QueryRow(ctx, query, id))
}

func (r *scheduleRepository) GetByOwnerDate(ctx context.Context, userID, date string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = $1 AND date = $2::date`
	return scanSchedule(r.pool.QueryRow(ctx, query, userID, date))
}

func (r *scheduleRepository) UpsertByOwnerDate(ctx context.Context, schedule *domain.Schedule, ifAbsent bool) (*domain.Schedule, bool, error) {
	if schedule == nil {
		return nil, false, domain.ErrInvalidPayload
	}

	entries := marshalJSON(schedule.Entries)
	metadata := marshalJSON(schedule.Metadata)

	if ifAbsent {
		// Conditional insert: the loser of a concurrent generation race
		// gets no row back and must adopt the winner's document.
		const query = `
		INSERT INTO schedules (id, user_id, date, entries, metadata)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING created_at`

		err := r.pool.QueryRow(ctx, query,
			schedule.ID, schedule.UserID, schedule.Date, entries, metadata,
		).Scan(&schedule.CreatedAt)
		if err == nil {
			return schedule, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, storageError(err)
		}

		stored, err := r.GetByOwnerDate(ctx, schedule.UserID, schedule.Date)
		if err != nil {
			return nil, false, err
		}
		return stored, false, nil
	}

	// Forced overwrite keeps the stored row's id and created_at so the
	// (owner, date) key never duplicates and document ids stay stable.
	const query = `
	INSERT INTO schedules (id, user_id, date, entries, metadata)
	VALUES ($1, $2, $3::date, $4, $5)
	ON CONFLICT (user_id, date) DO UPDATE
	SET entries = EXCLUDED.entries, metadata = EXCLUDED.metadata
	RETURNING id, created_at`

	if err := r.pool.QueryRow(ctx, query,
		schedule.ID, schedule.UserID, schedule.Date, entries, metadata,
	).Scan(&schedule.ID, &schedule.CreatedAt); err != nil {
		return nil, false, storageError(err)
	}
	return schedule, true, nil
}

func (r *scheduleRepository) Replace(ctx context.Context, schedule *domain.Schedule) error {
	if schedule == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE schedules
	SET entries = $3, metadata = $4
	WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query,
		schedule.ID, schedule.UserID,
		marshalJSON(schedule.Entries), marshalJSON(schedule.Metadata))
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var sched domain.Schedule
	var entries, metadata []byte

	if err := row.Scan(
		&sched.ID,
		&sched.UserID,
		&sched.Date,
		&entries,
		&metadata,
		&sched.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, storageError(err)
	}

	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &sched.Entries); err != nil {
			return nil, err
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &sched.Metadata); err != nil {
			return nil, err
		}
	}

	return &sched, nil
}
