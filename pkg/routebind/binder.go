package routebind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Kind names the record type a route parameter binds to.
type Kind string

const (
	KindTeacher Kind = "teacher"
	KindStudent Kind = "student"
)

// Entity is a bound record.
type Entity interface {
	NaturalKey() string
}

// TeacherStore reads teacher profiles. Lookups return school.ErrNotFound on a miss.
type TeacherStore interface {
	// PrimaryTeacher finds a teacher by natural key in its primary tenant.
	PrimaryTeacher(ctx context.Context, tenantID uuid.UUID, nik string) (*school.Teacher, error)

	// BranchTeacherIDs lists teachers with an active branch membership in tenantID.
	BranchTeacherIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)

	// TeacherAmong finds a teacher by natural key within ids.
	TeacherAmong(ctx context.Context, ids []uuid.UUID, nik string) (*school.Teacher, error)
}

// StudentStore reads student profiles.
type StudentStore interface {
	// StudentInTenant finds a student by natural key in its owning tenant.
	StudentInTenant(ctx context.Context, tenantID uuid.UUID, nis string) (*school.Student, error)
}

// Binder resolves natural keys within a tenant. It is safe for concurrent use.
type Binder struct {
	teachers     TeacherStore
	students     StudentStore
	logger       *slog.Logger
	errorHandler ErrorHandler
	hooks        []BindHook
}

// New creates a Binder. Both stores are required.
func New(teachers TeacherStore, students StudentStore, opts ...Option) *Binder {
	if teachers == nil || students == nil {
		panic("routebind: teacher and student stores cannot be nil")
	}

	b := &Binder{
		teachers:     teachers,
		students:     students,
		logger:       slog.New(slog.DiscardHandler),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BindNaturalKey resolves raw to a record of kind inside t.
func (b *Binder) BindNaturalKey(ctx context.Context, kind Kind, raw any, t *tenant.Tenant) (Entity, error) {
	switch kind {
	case KindTeacher:
		teacher, err := b.BindTeacher(ctx, raw, t)
		if err != nil {
			return nil, err
		}
		return teacher, nil
	case KindStudent:
		student, err := b.BindStudent(ctx, raw, t)
		if err != nil {
			return nil, err
		}
		return student, nil
	default:
		return nil, fmt.Errorf("routebind: unknown kind %q", kind)
	}
}

// BindTeacher resolves a teacher by natural key: primary tenant first, then
// active branch memberships of t.
func (b *Binder) BindTeacher(ctx context.Context, raw any, t *tenant.Tenant) (*school.Teacher, error) {
	key, err := NormalizeKey(raw)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, tenant.ErrTenantNotFound
	}

	teacher, err := b.teachers.PrimaryTeacher(ctx, t.ID, key)
	if err == nil {
		return teacher, nil
	}
	if !errors.Is(err, school.ErrNotFound) {
		return nil, fmt.Errorf("find teacher %q: %w", key, err)
	}

	ids, err := b.teachers.BranchTeacherIDs(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list branch teachers: %w", err)
	}
	if len(ids) == 0 {
		return nil, &NotFoundError{Kind: KindTeacher, Key: key, TenantID: t.ID}
	}

	teacher, err = b.teachers.TeacherAmong(ctx, ids, key)
	switch {
	case errors.Is(err, school.ErrNotFound):
		return nil, &NotFoundError{Kind: KindTeacher, Key: key, TenantID: t.ID}
	case err != nil:
		return nil, fmt.Errorf("find branch teacher %q: %w", key, err)
	}
	return teacher, nil
}

// BindStudent resolves a student by natural key inside its owning tenant.
func (b *Binder) BindStudent(ctx context.Context, raw any, t *tenant.Tenant) (*school.Student, error) {
	key, err := NormalizeKey(raw)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, tenant.ErrTenantNotFound
	}

	student, err := b.students.StudentInTenant(ctx, t.ID, key)
	switch {
	case errors.Is(err, school.ErrNotFound):
		return nil, &NotFoundError{Kind: KindStudent, Key: key, TenantID: t.ID}
	case err != nil:
		return nil, fmt.Errorf("find student %q: %w", key, err)
	}
	return student, nil
}
