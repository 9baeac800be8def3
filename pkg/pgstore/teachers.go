package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/schoolkit/pkg/pg"
	"github.com/dmitrymomot/schoolkit/pkg/school"
)

const teacherColumns = `id, nik, tenant_id, user_id, name, duties, module_access, created_at`

// TeacherStore reads teachers and their branch memberships.
// It serves both access.TeacherSource and routebind.TeacherStore.
type TeacherStore struct {
	db DBTX
}

func NewTeacherStore(db DBTX) *TeacherStore {
	return &TeacherStore{db: db}
}

// TeacherByID returns a teacher by surrogate ID.
func (s *TeacherStore) TeacherByID(ctx context.Context, id uuid.UUID) (*school.Teacher, error) {
	return s.findOne(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
}

// PrimaryTeacher returns the teacher with natural key nik whose primary tenant is tenantID.
func (s *TeacherStore) PrimaryTeacher(ctx context.Context, tenantID uuid.UUID, nik string) (*school.Teacher, error) {
	return s.findOne(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE tenant_id = $1 AND nik = $2`, tenantID, nik)
}

// BranchTeacherIDs lists teachers with an active branch membership in tenantID.
func (s *TeacherStore) BranchTeacherIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT teacher_id FROM teacher_tenants WHERE tenant_id = $1 AND active ORDER BY teacher_id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query branch teachers: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan branch teachers: %w", err)
	}
	return ids, nil
}

// TeacherAmong returns the oldest teacher with natural key nik among ids.
func (s *TeacherStore) TeacherAmong(ctx context.Context, ids []uuid.UUID, nik string) (*school.Teacher, error) {
	if len(ids) == 0 {
		return nil, school.ErrNotFound
	}
	return s.findOne(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE nik = $1 AND id = ANY($2) ORDER BY created_at, id LIMIT 1`,
		nik, ids,
	)
}

func (s *TeacherStore) findOne(ctx context.Context, query string, args ...any) (*school.Teacher, error) {
	var (
		t      school.Teacher
		userID uuid.NullUUID
	)
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.NIK, &t.TenantID, &userID, &t.Name, &t.Duties, &t.ModuleAccess, &t.CreatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, school.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query teacher: %w", err)
	}
	if userID.Valid {
		t.UserID = userID.UUID
	}
	return &t, nil
}
