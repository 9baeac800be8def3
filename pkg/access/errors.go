package access

import "errors"

// Deny reasons. Keys double as stable machine-readable error codes.
var (
	ErrAuthenticationRequired  = errors.New("access.authentication_required")
	ErrAccessNotGranted        = errors.New("access.access_not_granted")
	ErrNotYourTenant           = errors.New("access.not_your_tenant")
	ErrFeatureDisabled         = errors.New("access.feature_disabled")
	ErrModuleDisabled          = errors.New("access.module_disabled")
	ErrModuleAccessDenied      = errors.New("access.module_access_denied")
	ErrPermissionDenied        = errors.New("access.permission_denied")
	ErrInvalidPermissionFormat = errors.New("access.invalid_permission_format")
	ErrInvalidRequirement      = errors.New("access.invalid_requirement")

	// ErrGrantNotFound is returned by a GrantSource when the user has no
	// active grant for the tenant.
	ErrGrantNotFound = errors.New("access.grant_not_found")
)
