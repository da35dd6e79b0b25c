package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type preferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository returns a Postgres-backed implementation of
// PreferenceRepository with default-on-absent read semantics.
func NewPreferenceRepository(pool *pgxpool.Pool) repository.PreferenceRepository {
	return &preferenceRepository{pool: pool}
}

const prefColumns = `
	id, user_id, work_hours_start, work_hours_end, work_days,
	preferred_break_duration, notification_settings,
	calendar_sync_enabled, priority_weights, created_at, updated_at`

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	prefs, err := r.get(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, storageError(err)
	}

	// First read for this user: create the default row. DO NOTHING keeps
	// a concurrent first read from erroring; both then see one row.
	defaults := domain.DefaultPreferences(userID)
	const insert = `
	INSERT INTO user_preferences
		(id, user_id, work_hours_start, work_hours_end, work_days,
		 preferred_break_duration, notification_settings, calendar_sync_enabled, priority_weights)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, insert,
		uuid.NewString(),
		userID,
		defaults.WorkHoursStart,
		defaults.WorkHoursEnd,
		defaults.WorkDays,
		defaults.PreferredBreakDuration,
		marshalJSON(defaults.NotificationSettings),
		defaults.CalendarSyncEnabled,
		marshalJSON(defaults.PriorityWeights),
	); err != nil {
		return nil, storageError(err)
	}

	return r.get(ctx, userID)
}

func (r *preferenceRepository) Update(ctx context.Context, prefs *domain.UserPreferences) error {
	if prefs == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE user_preferences
	SET work_hours_start = $2,
		work_hours_end = $3,
		work_days = $4,
		preferred_break_duration = $5,
		notification_settings = $6,
		calendar_sync_enabled = $7,
		priority_weights = $8,
		updated_at = NOW()
	WHERE user_id = $1
	RETURNING id, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		prefs.UserID,
		prefs.WorkHoursStart,
		prefs.WorkHoursEnd,
		prefs.WorkDays,
		prefs.PreferredBreakDuration,
		marshalJSON(prefs.NotificationSettings),
		prefs.CalendarSyncEnabled,
		marshalJSON(prefs.PriorityWeights),
	).Scan(&prefs.ID, &prefs.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPreferencesNotFound
		}
		return storageError(err)
	}

	return nil
}

func (r *preferenceRepository) get(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	query := `SELECT ` + prefColumns + ` FROM user_preferences WHERE user_id = $1`

	var prefs domain.UserPreferences
	var notifications, weights []byte

	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&prefs.ID,
		&prefs.UserID,
		&prefs.WorkHoursStart,
		&prefs.WorkHoursEnd,
		&prefs.WorkDays,
		&prefs.PreferredBreakDuration,
		&notifications,
		&prefs.CalendarSyncEnabled,
		&weights,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, storageError(err)
	}

	if len(notifications) > 0 {
		_ = json.Unmarshal(notifications, &prefs.NotificationSettings)
	}
	if len(weights) > 0 {
		_ = json.Unmarshal(weights, &prefs.PriorityWeights)
	}

	return &prefs, nil
}
