package school

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a thread-safe in-memory store of teachers, students and
// branch memberships. It backs tests, fixtures and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	teachers    map[uuid.UUID]*Teacher
	students    map[uuid.UUID]*Student
	memberships []Membership
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teachers: make(map[uuid.UUID]*Teacher),
		students: make(map[uuid.UUID]*Student),
	}
}

// PutTeacher inserts or replaces a teacher.
func (s *MemoryStore) PutTeacher(t *Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers[t.ID] = t
}

// PutStudent inserts or replaces a student.
func (s *MemoryStore) PutStudent(st *Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = st
}

// PutMembership inserts or replaces the membership of a teacher in a tenant.
func (s *MemoryStore) PutMembership(m Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.memberships {
		if s.memberships[i].TeacherID == m.TeacherID && s.memberships[i].TenantID == m.TenantID {
			s.memberships[i] = m
			return
		}
	}
	s.memberships = append(s.memberships, m)
}

// TeacherByID returns a teacher by surrogate ID.
func (s *MemoryStore) TeacherByID(_ context.Context, id uuid.UUID) (*Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teachers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// PrimaryTeacher returns the teacher whose primary tenant is tenantID.
func (s *MemoryStore) PrimaryTeacher(_ context.Context, tenantID uuid.UUID, nik string) (*Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.firstTeacher(func(t *Teacher) bool {
		return t.TenantID == tenantID && t.NIK == nik
	})
}

// BranchTeacherIDs returns teachers with an active membership in tenantID.
func (s *MemoryStore) BranchTeacherIDs(_ context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uuid.UUID
	for _, m := range s.memberships {
		if m.TenantID == tenantID && m.Active {
			ids = append(ids, m.TeacherID)
		}
	}
	return ids, nil
}

// TeacherAmong returns the teacher with the natural key nik among ids.
func (s *MemoryStore) TeacherAmong(_ context.Context, ids []uuid.UUID, nik string) (*Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.firstTeacher(func(t *Teacher) bool {
		return t.NIK == nik && slices.Contains(ids, t.ID)
	})
}

// StudentInTenant returns the student with natural key nis owned by tenantID.
// Duplicates resolve to the oldest record, like teachers.
func (s *MemoryStore) StudentInTenant(_ context.Context, tenantID uuid.UUID, nis string) (*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Student
	for _, st := range s.students {
		if st.TenantID != tenantID || st.NIS != nis {
			continue
		}
		if found == nil || compareAge(st.CreatedAt, st.ID, found.CreatedAt, found.ID) < 0 {
			found = st
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// firstTeacher picks the oldest match so lookups stay deterministic.
func (s *MemoryStore) firstTeacher(match func(*Teacher) bool) (*Teacher, error) {
	var found []*Teacher
	for _, t := range s.teachers {
		if match(t) {
			found = append(found, t)
		}
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	slices.SortFunc(found, func(a, b *Teacher) int {
		return compareAge(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})
	return found[0], nil
}

// compareAge orders records by creation time, then by ID.
func compareAge(aAt time.Time, aID uuid.UUID, bAt time.Time, bID uuid.UUID) int {
	return cmp.Or(aAt.Compare(bAt), strings.Compare(aID.String(), bID.String()))
}
