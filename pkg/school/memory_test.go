package school_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/school"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantA, tenantB := uuid.New(), uuid.New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &school.Teacher{ID: uuid.New(), NIK: "T1", TenantID: tenantA, CreatedAt: base}
	newer := &school.Teacher{ID: uuid.New(), NIK: "T1", TenantID: tenantA, CreatedAt: base.Add(time.Hour)}
	branch := &school.Teacher{ID: uuid.New(), NIK: "T2", TenantID: tenantA, CreatedAt: base}
	student := &school.Student{ID: uuid.New(), NIS: "S1", TenantID: tenantA}

	store := school.NewMemoryStore()
	store.PutTeacher(newer)
	store.PutTeacher(older)
	store.PutTeacher(branch)
	store.PutStudent(student)
	store.PutMembership(school.Membership{TeacherID: branch.ID, TenantID: tenantB, Active: false})
	store.PutMembership(school.Membership{TeacherID: branch.ID, TenantID: tenantB, Active: true})

	t.Run("teacher by id", func(t *testing.T) {
		t.Parallel()

		got, err := store.TeacherByID(ctx, branch.ID)
		require.NoError(t, err)
		assert.Same(t, branch, got)

		_, err = store.TeacherByID(ctx, uuid.New())
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("duplicate natural keys resolve to the oldest", func(t *testing.T) {
		t.Parallel()

		got, err := store.PrimaryTeacher(ctx, tenantA, "T1")
		require.NoError(t, err)
		assert.Equal(t, older.ID, got.ID)
	})

	t.Run("primary tenant only", func(t *testing.T) {
		t.Parallel()

		_, err := store.PrimaryTeacher(ctx, tenantB, "T2")
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("membership is replaced, not duplicated", func(t *testing.T) {
		t.Parallel()

		ids, err := store.BranchTeacherIDs(ctx, tenantB)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{branch.ID}, ids)

		got, err := store.TeacherAmong(ctx, ids, "T2")
		require.NoError(t, err)
		assert.Equal(t, branch.ID, got.ID)

		_, err = store.TeacherAmong(ctx, ids, "T1")
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("student in owning tenant", func(t *testing.T) {
		t.Parallel()

		got, err := store.StudentInTenant(ctx, tenantA, "S1")
		require.NoError(t, err)
		assert.Equal(t, student.ID, got.ID)

		_, err = store.StudentInTenant(ctx, tenantB, "S1")
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("duplicate student keys resolve to the oldest", func(t *testing.T) {
		t.Parallel()

		students := school.NewMemoryStore()
		oldest := &school.Student{ID: uuid.New(), NIS: "S7", TenantID: tenantA, CreatedAt: base}
		for i := range 8 {
			students.PutStudent(&school.Student{ID: uuid.New(), NIS: "S7", TenantID: tenantA, CreatedAt: base.Add(time.Duration(i+1) * time.Hour)})
		}
		students.PutStudent(oldest)

		for range 20 {
			got, err := students.StudentInTenant(ctx, tenantA, "S7")
			require.NoError(t, err)
			assert.Equal(t, oldest.ID, got.ID)
		}
	})

	t.Run("same creation time breaks ties by id", func(t *testing.T) {
		t.Parallel()

		students := school.NewMemoryStore()
		low := uuid.MustParse("00000000-0000-4000-8000-000000000001")
		high := uuid.MustParse("ffffffff-0000-4000-8000-000000000001")
		students.PutStudent(&school.Student{ID: high, NIS: "S8", TenantID: tenantA, CreatedAt: base})
		students.PutStudent(&school.Student{ID: low, NIS: "S8", TenantID: tenantA, CreatedAt: base})

		for range 20 {
			got, err := students.StudentInTenant(ctx, tenantA, "S8")
			require.NoError(t, err)
			assert.Equal(t, low, got.ID)
		}
	})
}
