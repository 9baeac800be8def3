package school

import (
	"time"

	"github.com/google/uuid"
)

// Student belongs to exactly one tenant.
type Student struct {
	ID        uuid.UUID `json:"id"`
	NIS       string    `json:"nis"`
	TenantID  uuid.UUID `json:"tenant_id"`
	UserID    uuid.UUID `json:"user_id,omitzero"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NaturalKey returns the route-facing identifier.
func (s *Student) NaturalKey() string { return s.NIS }
