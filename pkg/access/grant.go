package access

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GrantStatus is the approval state of a super-admin access request.
type GrantStatus string

const (
	GrantPending  GrantStatus = "pending"
	GrantApproved GrantStatus = "approved"
	GrantRevoked  GrantStatus = "revoked"
)

// Grant lets a super-admin act inside a tenant with school-admin privileges.
type Grant struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	Status      GrantStatus `json:"status"`
	RequestedAt time.Time   `json:"requested_at"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
}

// IsActive reports whether the grant is approved and inside its validity window at now.
func (g *Grant) IsActive(now time.Time) bool {
	if g == nil || g.Status != GrantApproved {
		return false
	}
	if g.ApprovedAt != nil && g.ApprovedAt.After(now) {
		return false
	}
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

// GrantSource loads super-admin access grants.
type GrantSource interface {
	// ActiveGrant returns a grant of userID for tenantID that is active at now,
	// preferring the most recently requested one, or ErrGrantNotFound.
	ActiveGrant(ctx context.Context, userID, tenantID uuid.UUID, now time.Time) (*Grant, error)
}
