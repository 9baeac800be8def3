package access

import "github.com/google/uuid"

// Principal is the authenticated actor of a request.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`

	// HomeTenantID is uuid.Nil for super-admins.
	HomeTenantID uuid.UUID `json:"home_tenant_id,omitzero"`

	// TeacherID and StudentID link the optional profile record.
	TeacherID uuid.UUID `json:"teacher_id,omitzero"`
	StudentID uuid.UUID `json:"student_id,omitzero"`
}

// BelongsTo reports whether tenantID is the principal's home tenant.
func (p *Principal) BelongsTo(tenantID uuid.UUID) bool {
	return p.HomeTenantID != uuid.Nil && p.HomeTenantID == tenantID
}
