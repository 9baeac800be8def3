// Package schoolkit wires tenant resolution, access control and route model
// binding for multi-tenant school panels, and maps their errors to HTTP.
//
// The request pipeline is assembled from the sub-packages:
//
//   - pkg/tenant resolves the school from the host or a {tenant} path segment;
//   - pkg/access authorizes the principal for the tenant and a route requirement;
//   - pkg/routebind binds {teacher} and {student} natural keys to records.
//
// Each step rejects a request through an error handler. ErrorResponder is the
// shared JSON implementation:
//
//	respond := schoolkit.ErrorResponder(logger)
//
//	r.Use(tenant.Middleware(resolver, tenant.WithErrorHandler(respond)))
//	guard := access.NewGuard(grants, teachers, access.WithErrorHandler(respond))
//	binder := routebind.New(teachers, students, routebind.WithErrorHandler(respond))
//
// HTTPErrorFor maps any error from those packages to an HTTPError with a
// status code and a stable key:
//
//	404 tenant_not_found, tenant_inactive, entity_not_found
//	401 authentication_required
//	403 access_not_granted, not_your_tenant, feature_disabled,
//	    module_disabled, module_access_denied, permission_denied
//	500 invalid_permission_format, invalid_requirement,
//	    invalid_natural_key, internal_server_error
package schoolkit
