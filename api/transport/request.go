package transport

// TaskRequest carries task create/update payloads.
type TaskRequest struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Priority          string            `json:"priority"`
	Status            string            `json:"status"`
	EstimatedDuration *int              `json:"estimated_duration"`
	ActualStart       string            `json:"actual_start"`
	ActualEnd         string            `json:"actual_end"`
	Tags              []string          `json:"tags"`
	Metadata          map[string]string `json:"metadata"`
}

// PreferencesUpdateRequest is a partial update: nil fields keep the
// stored value.
type PreferencesUpdateRequest struct {
	WorkHoursStart         *string                      `json:"work_hours_start"`
	WorkHoursEnd           *string                      `json:"work_hours_end"`
	WorkDays               *[]int                       `json:"work_days"`
	PreferredBreakDuration *int                         `json:"preferred_break_duration"`
	NotificationSettings   *NotificationSettingsPayload `json:"notification_settings"`
	CalendarSyncEnabled    *bool                        `json:"calendar_sync_enabled"`
	PriorityWeights        *PriorityWeightsPayload      `json:"priority_weights"`
}

type NotificationSettingsPayload struct {
	Email                 *bool  `json:"email"`
	Push                  *bool  `json:"push"`
	InApp                 *bool  `json:"in_app"`
	ReminderMinutesBefore *[]int `json:"reminder_minutes_before"`
}

type PriorityWeightsPayload struct {
	Deadline   *float64 `json:"deadline"`
	Importance *float64 `json:"importance"`
	Duration   *float64 `json:"duration"`
}

// GenerateScheduleRequest triggers daily schedule generation.
type GenerateScheduleRequest struct {
	Date  string `json:"date"` // "YYYY-MM-DD"
	Force bool   `json:"force_regenerate"`
}

// EntryPayload is one schedule slot in adjustment requests. Times are
// RFC3339.
type EntryPayload struct {
	TaskID string `json:"task_id"`
	Start  string `json:"start_time"`
	End    string `json:"end_time"`
}

// AdjustScheduleRequest edits an existing schedule document. Removes
// are applied first, then moves, then adds.
type AdjustScheduleRequest struct {
	Moves   []EntryPayload `json:"moves"`
	Adds    []EntryPayload `json:"adds"`
	Removes []string       `json:"removes"`
}

// IngestTextRequest captures free text for note storage and task
// extraction.
type IngestTextRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
