package routebind_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

type world struct {
	tenantA *tenant.Tenant
	tenantB *tenant.Tenant
	tenantC *tenant.Tenant
	store   *school.MemoryStore
	binder  *routebind.Binder
}

func newWorld() *world {
	w := &world{
		tenantA: &tenant.Tenant{ID: uuid.New(), Slug: "sman1", Active: true},
		tenantB: &tenant.Tenant{ID: uuid.New(), Slug: "sman2", Active: true},
		tenantC: &tenant.Tenant{ID: uuid.New(), Slug: "sman3", Active: true},
		store:   school.NewMemoryStore(),
	}
	w.binder = routebind.New(w.store, w.store)
	return w
}

func (w *world) addTeacher(nik string, home *tenant.Tenant) *school.Teacher {
	t := &school.Teacher{ID: uuid.New(), NIK: nik, TenantID: home.ID, Name: "Teacher " + nik, CreatedAt: time.Now()}
	w.store.PutTeacher(t)
	return t
}

func (w *world) addStudent(nis string, home *tenant.Tenant) *school.Student {
	s := &school.Student{ID: uuid.New(), NIS: nis, TenantID: home.ID, Name: "Student " + nis}
	w.store.PutStudent(s)
	return s
}

// stubTeachers counts calls so tests can assert lookup order.
type stubTeachers struct {
	primary    *school.Teacher
	primaryErr error
	branchErr  error
	branchHits int
}

func (s *stubTeachers) PrimaryTeacher(context.Context, uuid.UUID, string) (*school.Teacher, error) {
	if s.primaryErr != nil {
		return nil, s.primaryErr
	}
	if s.primary == nil {
		return nil, school.ErrNotFound
	}
	return s.primary, nil
}

func (s *stubTeachers) BranchTeacherIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	s.branchHits++
	return nil, s.branchErr
}

func (s *stubTeachers) TeacherAmong(context.Context, []uuid.UUID, string) (*school.Teacher, error) {
	return nil, school.ErrNotFound
}

func TestBindTeacher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("primary tenant match", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		want := w.addTeacher("T123", w.tenantA)

		got, err := w.binder.BindTeacher(ctx, "T123", w.tenantA)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("branch membership fallback", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		want := w.addTeacher("T123", w.tenantA)
		w.store.PutMembership(school.Membership{TeacherID: want.ID, TenantID: w.tenantB.ID, Active: true})

		got, err := w.binder.BindTeacher(ctx, "T123", w.tenantB)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("inactive branch membership is ignored", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		teacher := w.addTeacher("T123", w.tenantA)
		w.store.PutMembership(school.Membership{TeacherID: teacher.ID, TenantID: w.tenantB.ID, Active: false})

		_, err := w.binder.BindTeacher(ctx, "T123", w.tenantB)
		assert.ErrorIs(t, err, routebind.ErrEntityNotFound)
	})

	t.Run("primary match wins over branch match", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		primary := w.addTeacher("T123", w.tenantB)
		branch := w.addTeacher("T123", w.tenantA)
		w.store.PutMembership(school.Membership{TeacherID: branch.ID, TenantID: w.tenantB.ID, Active: true})

		got, err := w.binder.BindTeacher(ctx, "T123", w.tenantB)
		require.NoError(t, err)
		assert.Equal(t, primary.ID, got.ID)
	})

	t.Run("primary hit skips branch lookup", func(t *testing.T) {
		t.Parallel()

		stub := &stubTeachers{primary: &school.Teacher{ID: uuid.New(), NIK: "T1"}}
		binder := routebind.New(stub, school.NewMemoryStore())

		_, err := binder.BindTeacher(ctx, "T1", &tenant.Tenant{ID: uuid.New()})
		require.NoError(t, err)
		assert.Zero(t, stub.branchHits)
	})

	t.Run("other tenant's teacher is not found", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		teacher := w.addTeacher("T123", w.tenantA)
		w.store.PutMembership(school.Membership{TeacherID: teacher.ID, TenantID: w.tenantB.ID, Active: true})

		_, err := w.binder.BindTeacher(ctx, "T123", w.tenantC)
		require.ErrorIs(t, err, routebind.ErrEntityNotFound)

		var nf *routebind.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, routebind.KindTeacher, nf.Kind)
		assert.Equal(t, "T123", nf.Key)
		assert.Equal(t, w.tenantC.ID, nf.TenantID)
	})

	t.Run("branch ids do not leak other natural keys", func(t *testing.T) {
		t.Parallel()

		w := newWorld()
		member := w.addTeacher("T1", w.tenantA)
		w.addTeacher("T2", w.tenantA)
		w.store.PutMembership(school.Membership{TeacherID: member.ID, TenantID: w.tenantB.ID, Active: true})

		_, err := w.binder.BindTeacher(ctx, "T2", w.tenantB)
		assert.ErrorIs(t, err, routebind.ErrEntityNotFound)
	})

	t.Run("store failures are not misreported as not found", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("db down")
		for _, stub := range []*stubTeachers{{primaryErr: boom}, {branchErr: boom}} {
			binder := routebind.New(stub, school.NewMemoryStore())
			_, err := binder.BindTeacher(ctx, "T1", &tenant.Tenant{ID: uuid.New()})
			assert.ErrorIs(t, err, boom)
			assert.NotErrorIs(t, err, routebind.ErrEntityNotFound)
		}
	})

	t.Run("missing tenant", func(t *testing.T) {
		t.Parallel()

		_, err := newWorld().binder.BindTeacher(ctx, "T1", nil)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestBindStudent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld()
	student := w.addStudent("2024001", w.tenantA)

	got, err := w.binder.BindStudent(ctx, "2024001", w.tenantA)
	require.NoError(t, err)
	assert.Equal(t, student, got)

	got, err = w.binder.BindStudent(ctx, 2024001, w.tenantA)
	require.NoError(t, err)
	assert.Equal(t, student, got)

	_, err = w.binder.BindStudent(ctx, "2024001", w.tenantB)
	var nf *routebind.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, routebind.KindStudent, nf.Kind)
}

func TestBindNaturalKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld()
	teacher := w.addTeacher("T9", w.tenantA)
	student := w.addStudent("S9", w.tenantA)

	got, err := w.binder.BindNaturalKey(ctx, routebind.KindTeacher, "T9", w.tenantA)
	require.NoError(t, err)
	assert.Equal(t, teacher.NaturalKey(), got.NaturalKey())

	got, err = w.binder.BindNaturalKey(ctx, routebind.KindStudent, "S9", w.tenantA)
	require.NoError(t, err)
	assert.Equal(t, student.NaturalKey(), got.NaturalKey())

	got, err = w.binder.BindNaturalKey(ctx, routebind.KindTeacher, []string{"T9"}, w.tenantA)
	assert.ErrorIs(t, err, routebind.ErrInvalidNaturalKey)
	assert.True(t, got == nil, "entity must be a nil interface on error")

	got, err = w.binder.BindNaturalKey(ctx, routebind.KindStudent, "missing", w.tenantA)
	assert.ErrorIs(t, err, routebind.ErrEntityNotFound)
	assert.True(t, got == nil, "entity must be a nil interface on error")

	got, err = w.binder.BindNaturalKey(ctx, routebind.KindTeacher, "missing", w.tenantA)
	assert.ErrorIs(t, err, routebind.ErrEntityNotFound)
	assert.True(t, got == nil, "entity must be a nil interface on error")

	_, err = w.binder.BindNaturalKey(ctx, routebind.Kind("parent"), "P1", w.tenantA)
	assert.Error(t, err)
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	valid := []struct {
		raw  any
		want string
	}{
		{"T123", "T123"},
		{"  T123 ", "T123"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint32(9), "9"},
		{float64(1987), "1987"},
		{float32(12), "12"},
		{json.Number("31"), "31"},
		{json.Number("31.0"), "31"},
	}
	for _, tt := range valid {
		got, err := routebind.NormalizeKey(tt.raw)
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.want, got)
	}

	invalid := []any{nil, "", "   ", 1.5, json.Number("1.5"), json.Number("x"), []byte("T1"), map[string]string{}, struct{}{}, true}
	for _, raw := range invalid {
		_, err := routebind.NormalizeKey(raw)
		assert.ErrorIs(t, err, routebind.ErrInvalidNaturalKey, "%v", raw)
	}
}

func TestNew_PanicsWithoutStores(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { routebind.New(nil, school.NewMemoryStore()) })
	assert.Panics(t, func() { routebind.New(school.NewMemoryStore(), nil) })
}
