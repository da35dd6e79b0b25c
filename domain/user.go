package domain

import "time"

// User represents an authenticated identity. Identity verification
// itself is delegated to the external auth provider; this service only
// mirrors the validated identity.
type User struct {
	ID        string            `json:"id"`
	Email     string            `json:"email,omitempty"`
	Role      string            `json:"role"`
	Status    string            `json:"status"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}
