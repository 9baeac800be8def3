package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/pg"
)

// GrantStore implements access.GrantSource over super_admin_tenant_access.
type GrantStore struct {
	db DBTX
}

func NewGrantStore(db DBTX) *GrantStore {
	return &GrantStore{db: db}
}

// ActiveGrant implements access.GrantSource.
func (s *GrantStore) ActiveGrant(ctx context.Context, userID, tenantID uuid.UUID, now time.Time) (*access.Grant, error) {
	var (
		g      access.Grant
		status string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, tenant_id, status, requested_at, approved_at, expires_at
		FROM super_admin_tenant_access
		WHERE user_id = $1 AND tenant_id = $2
			AND status = 'approved'
			AND (approved_at IS NULL OR approved_at <= $3)
			AND (expires_at IS NULL OR expires_at > $3)
		ORDER BY requested_at DESC, id
		LIMIT 1`,
		userID, tenantID, now,
	).Scan(&g.ID, &g.UserID, &g.TenantID, &status, &g.RequestedAt, &g.ApprovedAt, &g.ExpiresAt)
	if pg.IsNotFoundError(err) {
		return nil, access.ErrGrantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query access grant: %w", err)
	}
	g.Status = access.GrantStatus(status)
	return &g, nil
}
