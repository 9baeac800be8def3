// Package access decides whether an authenticated principal may use a tenant
// and a specific feature, module or module permission inside it.
//
// The Guard evaluates a Requirement against a Principal and a tenant.Tenant in
// a fixed order and stops at the first failing check:
//
//  1. the principal must be present (ErrAuthenticationRequired);
//  2. the tenant must be present and active (tenant.ErrTenantNotFound, tenant.ErrTenantInactive);
//  3. tenant membership: super-admins need an approved, currently active Grant
//     for the tenant and are then treated as school admins; everyone else must
//     belong to the tenant (ErrAccessNotGranted, ErrNotYourTenant);
//  4. feature requirements need the feature enabled for the tenant (ErrFeatureDisabled);
//  5. module requirements need the module enabled, where CoreModules are always
//     enabled, and teachers additionally need the headmaster duty or a module
//     grant (ErrModuleDisabled, ErrModuleAccessDenied);
//  6. permission requirements run the module check and then need the permission
//     enabled for the tenant and, for teachers, granted to them (ErrPermissionDenied).
//
// A nil error means allow. Any error wraps exactly one reason from the list
// above, or a data source failure.
//
// Basic usage with chi:
//
//	guard := access.NewGuard(grantStore, teacherStore)
//
//	r.Use(tenant.Middleware(resolver))
//	r.Use(authn.Middleware(verifier))
//	r.With(guard.Require(access.Module("teachers"))).Get("/teachers", list)
//	r.With(guard.RequirePermission("grades:view")).Get("/grades/{student}", show)
package access
