package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/pg"
	"github.com/dmitrymomot/schoolkit/pkg/school"
)

// StudentStore implements routebind.StudentStore.
type StudentStore struct {
	db DBTX
}

func NewStudentStore(db DBTX) *StudentStore {
	return &StudentStore{db: db}
}

// StudentInTenant returns the student with natural key nis owned by tenantID.
func (s *StudentStore) StudentInTenant(ctx context.Context, tenantID uuid.UUID, nis string) (*school.Student, error) {
	var (
		st     school.Student
		userID uuid.NullUUID
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, nis, tenant_id, user_id, name, created_at FROM students WHERE tenant_id = $1 AND nis = $2`,
		tenantID, nis,
	).Scan(&st.ID, &st.NIS, &st.TenantID, &userID, &st.Name, &st.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, school.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}
	if userID.Valid {
		st.UserID = userID.UUID
	}
	return &st, nil
}
