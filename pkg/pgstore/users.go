package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/pg"
)

// UserStore implements authn.PrincipalLoader.
type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

// PrincipalByID loads a user with its linked teacher or student profile.
func (s *UserStore) PrincipalByID(ctx context.Context, id uuid.UUID) (*access.Principal, error) {
	var (
		p    access.Principal
		role string
	)
	var tenantID, teacherID, studentID uuid.NullUUID
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.role, u.tenant_id, t.id, s.id
		FROM users u
		LEFT JOIN teachers t ON t.user_id = u.id
		LEFT JOIN students s ON s.user_id = u.id
		WHERE u.id = $1`,
		id,
	).Scan(&p.ID, &role, &tenantID, &teacherID, &studentID)
	if pg.IsNotFoundError(err) {
		return nil, authn.ErrUnknownPrincipal
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	p.Role = access.ParseRole(role)
	p.HomeTenantID = tenantID.UUID
	p.TeacherID = teacherID.UUID
	p.StudentID = studentID.UUID
	return &p, nil
}
