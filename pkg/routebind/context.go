package routebind

import (
	"context"

	"github.com/dmitrymomot/schoolkit/pkg/school"
)

type (
	teacherCtxKey struct{}
	studentCtxKey struct{}
)

// WithTeacher stores a bound teacher in the context.
func WithTeacher(ctx context.Context, t *school.Teacher) context.Context {
	return context.WithValue(ctx, teacherCtxKey{}, t)
}

// TeacherFromContext returns the bound teacher, if any.
func TeacherFromContext(ctx context.Context) (*school.Teacher, bool) {
	t, ok := ctx.Value(teacherCtxKey{}).(*school.Teacher)
	return t, ok && t != nil
}

// MustTeacherFromContext panics when no teacher was bound.
func MustTeacherFromContext(ctx context.Context) *school.Teacher {
	t, ok := TeacherFromContext(ctx)
	if !ok {
		panic(ErrNoEntityInContext)
	}
	return t
}

// WithStudent stores a bound student in the context.
func WithStudent(ctx context.Context, s *school.Student) context.Context {
	return context.WithValue(ctx, studentCtxKey{}, s)
}

// StudentFromContext returns the bound student, if any.
func StudentFromContext(ctx context.Context) (*school.Student, bool) {
	s, ok := ctx.Value(studentCtxKey{}).(*school.Student)
	return s, ok && s != nil
}

// MustStudentFromContext panics when no student was bound.
func MustStudentFromContext(ctx context.Context) *school.Student {
	s, ok := StudentFromContext(ctx)
	if !ok {
		panic(ErrNoEntityInContext)
	}
	return s
}
