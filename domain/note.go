package domain

import "time"

// Note is a free-form capture (text today; the original product also
// ingested voice and images) from which tasks may have been extracted.
type Note struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title,omitempty"`
	Content          string    `json:"content"`
	SourceType       string    `json:"source_type"`
	ExtractedTaskIDs []string  `json:"extracted_task_ids,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
