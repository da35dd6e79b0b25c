package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is one pending task reminder waiting to be handed to the
// notification store. Reminders live in the local outbox so a committed
// schedule never blocks on, or fails because of, notification delivery.
type Reminder struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TaskID       string    `json:"task_id"`
	ScheduleID   string    `json:"schedule_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Channels     []string  `json:"channels,omitempty"`
	Retries      int       `json:"retries"`
	EnqueuedAt   time.Time `json:"enqueued_at"`

	bucketKey []byte
}

func (r *Reminder) normalize() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.EnqueuedAt.IsZero() {
		r.EnqueuedAt = time.Now()
	}
}
