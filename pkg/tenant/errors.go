package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no active tenant matches the request.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantInactive is joined with ErrTenantNotFound when the only matching
	// record is deactivated.
	ErrTenantInactive = errors.New("tenant is inactive")

	// ErrInvalidIdentifier is returned when a slug or domain is malformed.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrReadOnlyDirectory is returned by CachedDirectory.SetActive when the
	// wrapped directory cannot write.
	ErrReadOnlyDirectory = errors.New("tenant directory is read-only")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
