package school

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DutyHeadmaster is the additional duty that bypasses per-module grants.
const DutyHeadmaster = "headmaster"

// Teacher is a teacher profile. TenantID is the primary tenant; a teacher may
// also serve other tenants through active Membership rows.
type Teacher struct {
	ID       uuid.UUID `json:"id"`
	NIK      string    `json:"nik"`
	TenantID uuid.UUID `json:"tenant_id"`
	UserID   uuid.UUID `json:"user_id,omitzero"`
	Name     string    `json:"name"`

	// Duties are additional-duty tags such as "headmaster".
	Duties []string `json:"duties,omitempty"`

	// ModuleAccess maps a module key to the permission names granted on it.
	// Presence of the key grants access to the module itself.
	ModuleAccess map[string][]string `json:"module_access,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NaturalKey returns the route-facing identifier.
func (t *Teacher) NaturalKey() string { return t.NIK }

// HasDuty reports whether the teacher carries the given additional duty.
func (t *Teacher) HasDuty(duty string) bool {
	return slices.Contains(t.Duties, duty)
}

// IsHeadmaster reports whether the teacher holds the headmaster duty.
func (t *Teacher) IsHeadmaster() bool {
	return t.HasDuty(DutyHeadmaster)
}

// CanAccessModule reports whether the teacher has an explicit grant for module.
func (t *Teacher) CanAccessModule(module string) bool {
	_, ok := t.ModuleAccess[module]
	return ok
}

// HasModulePermission reports whether the module grant includes permission.
func (t *Teacher) HasModulePermission(module, permission string) bool {
	perms, ok := t.ModuleAccess[module]
	if !ok {
		return false
	}
	return slices.Contains(perms, permission)
}

// Membership links a teacher to a secondary (branch) tenant.
type Membership struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Active    bool      `json:"active"`
}
