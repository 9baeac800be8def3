package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// TeacherSource loads teacher profiles for module and permission checks.
type TeacherSource interface {
	// TeacherByID returns the profile or school.ErrNotFound.
	TeacherByID(ctx context.Context, id uuid.UUID) (*school.Teacher, error)
}

// Guard authorizes principals against tenants. It holds no per-request state
// and is safe for concurrent use.
type Guard struct {
	grants       GrantSource
	teachers     TeacherSource
	now          func() time.Time
	logger       *slog.Logger
	errorHandler ErrorHandler
	hooks        []DecisionHook
}

// NewGuard creates a guard. Both sources are required.
func NewGuard(grants GrantSource, teachers TeacherSource, opts ...Option) *Guard {
	if grants == nil || teachers == nil {
		panic("access: grant and teacher sources cannot be nil")
	}

	g := &Guard{
		grants:       grants,
		teachers:     teachers,
		now:          time.Now,
		logger:       slog.New(slog.DiscardHandler),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize returns nil when p may satisfy req inside t. Otherwise it returns
// the first failing reason. It only reads from the sources.
func (g *Guard) Authorize(ctx context.Context, p *Principal, t *tenant.Tenant, req Requirement) error {
	if p == nil {
		return ErrAuthenticationRequired
	}
	if t == nil {
		return tenant.ErrTenantNotFound
	}
	if !t.Active {
		return errors.Join(tenant.ErrTenantNotFound, tenant.ErrTenantInactive)
	}
	if err := req.validate(); err != nil {
		return err
	}

	role, err := g.effectiveRole(ctx, p, t)
	if err != nil {
		return err
	}

	switch req.Kind {
	case KindFeature:
		if !t.HasFeature(req.Key) {
			return fmt.Errorf("%w: %q", ErrFeatureDisabled, req.Key)
		}
		return nil
	case KindModule:
		_, err := g.checkModule(ctx, p, role, t, req.Key)
		return err
	case KindPermission:
		teacher, err := g.checkModule(ctx, p, role, t, req.Key)
		if err != nil {
			return err
		}
		if !t.HasModulePermission(req.Key, req.Permission) {
			return fmt.Errorf("%w: %s not enabled for tenant", ErrPermissionDenied, req)
		}
		if teacher != nil && !teacher.IsHeadmaster() && !teacher.HasModulePermission(req.Key, req.Permission) {
			return fmt.Errorf("%w: %s not granted", ErrPermissionDenied, req)
		}
		return nil
	default:
		return nil
	}
}

// effectiveRole runs the membership check. A super-admin holding an active
// grant acts as a school admin from here on.
func (g *Guard) effectiveRole(ctx context.Context, p *Principal, t *tenant.Tenant) (Role, error) {
	if p.Role != RoleSuperAdmin {
		if !p.BelongsTo(t.ID) {
			return p.Role, ErrNotYourTenant
		}
		return p.Role, nil
	}

	now := g.now()
	grant, err := g.grants.ActiveGrant(ctx, p.ID, t.ID, now)
	switch {
	case errors.Is(err, ErrGrantNotFound):
		return p.Role, ErrAccessNotGranted
	case err != nil:
		return p.Role, fmt.Errorf("load access grant: %w", err)
	case !grant.IsActive(now):
		return p.Role, fmt.Errorf("%w: grant is %s", ErrAccessNotGranted, grant.Status)
	}
	return RoleSchoolAdmin, nil
}

// checkModule returns the teacher profile when role is RoleTeacher.
func (g *Guard) checkModule(ctx context.Context, p *Principal, role Role, t *tenant.Tenant, module string) (*school.Teacher, error) {
	if !IsCoreModule(module) && !t.HasModule(module) {
		return nil, fmt.Errorf("%w: %q", ErrModuleDisabled, module)
	}
	if role != RoleTeacher {
		return nil, nil
	}

	if p.TeacherID == uuid.Nil {
		return nil, fmt.Errorf("%w: no teacher profile", ErrModuleAccessDenied)
	}
	teacher, err := g.teachers.TeacherByID(ctx, p.TeacherID)
	if errors.Is(err, school.ErrNotFound) {
		return nil, fmt.Errorf("%w: no teacher profile", ErrModuleAccessDenied)
	}
	if err != nil {
		return nil, fmt.Errorf("load teacher profile: %w", err)
	}

	if !teacher.IsHeadmaster() && !teacher.CanAccessModule(module) {
		return nil, fmt.Errorf("%w: %q", ErrModuleAccessDenied, module)
	}
	return teacher, nil
}

// IsDenial reports whether err is one of the guard's deny reasons rather than
// a data source failure or a configuration error.
func IsDenial(err error) bool {
	return slices.ContainsFunc(denials, func(target error) bool { return errors.Is(err, target) })
}

var denials = []error{
	ErrAuthenticationRequired,
	tenant.ErrTenantNotFound,
	ErrAccessNotGranted,
	ErrNotYourTenant,
	ErrFeatureDisabled,
	ErrModuleDisabled,
	ErrModuleAccessDenied,
	ErrPermissionDenied,
}
