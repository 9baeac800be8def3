package schoolkit

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// HTTPError represents an HTTP error with status code and a stable key.
// The key is suitable for i18n lookups on the client.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError creates a custom HTTP error.
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}

var (
	ErrUnauthenticated         = HTTPError{Code: http.StatusUnauthorized, Key: "authentication_required", Message: "Authentication required"}
	ErrTenantNotFound          = HTTPError{Code: http.StatusNotFound, Key: "tenant_not_found", Message: "Tenant not found"}
	ErrTenantInactive          = HTTPError{Code: http.StatusNotFound, Key: "tenant_inactive", Message: "Tenant not found"}
	ErrEntityNotFound          = HTTPError{Code: http.StatusNotFound, Key: "entity_not_found", Message: "Record not found"}
	ErrAccessNotGranted        = HTTPError{Code: http.StatusForbidden, Key: "access_not_granted", Message: "Access not granted, request access to this school first"}
	ErrNotYourTenant           = HTTPError{Code: http.StatusForbidden, Key: "not_your_tenant", Message: "You do not belong to this school"}
	ErrFeatureDisabled         = HTTPError{Code: http.StatusForbidden, Key: "feature_disabled", Message: "This feature is not enabled for the school"}
	ErrModuleDisabled          = HTTPError{Code: http.StatusForbidden, Key: "module_disabled", Message: "This module is not enabled for the school"}
	ErrModuleAccessDenied      = HTTPError{Code: http.StatusForbidden, Key: "module_access_denied", Message: "Insufficient module access, ask an admin to grant the duty"}
	ErrPermissionDenied        = HTTPError{Code: http.StatusForbidden, Key: "permission_denied", Message: "Permission denied"}
	ErrInvalidPermissionFormat = HTTPError{Code: http.StatusInternalServerError, Key: "invalid_permission_format", Message: "Route permission is misconfigured"}
	ErrInvalidRequirement      = HTTPError{Code: http.StatusInternalServerError, Key: "invalid_requirement", Message: "Route requirement is misconfigured"}
	ErrInvalidNaturalKey       = HTTPError{Code: http.StatusInternalServerError, Key: "invalid_natural_key", Message: "Route parameter is invalid"}
	ErrInternalServerError     = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error", Message: "Internal server error"}
	ErrNotFound                = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: "Not found"}
	ErrMethodNotAllowed        = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed", Message: "Method not allowed"}
	ErrServiceUnavailable      = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable", Message: "Service unavailable"}
)

// errorTable is ordered: the first sentinel an error matches decides.
// ErrTenantInactive is always joined with ErrTenantNotFound, so it goes first.
var errorTable = []struct {
	target error
	http   HTTPError
}{
	{access.ErrAuthenticationRequired, ErrUnauthenticated},
	{tenant.ErrTenantInactive, ErrTenantInactive},
	{tenant.ErrTenantNotFound, ErrTenantNotFound},
	{tenant.ErrNoTenantInContext, ErrTenantNotFound},
	{routebind.ErrEntityNotFound, ErrEntityNotFound},
	{access.ErrAccessNotGranted, ErrAccessNotGranted},
	{access.ErrNotYourTenant, ErrNotYourTenant},
	{access.ErrFeatureDisabled, ErrFeatureDisabled},
	{access.ErrModuleDisabled, ErrModuleDisabled},
	{access.ErrModuleAccessDenied, ErrModuleAccessDenied},
	{access.ErrPermissionDenied, ErrPermissionDenied},
	{access.ErrInvalidPermissionFormat, ErrInvalidPermissionFormat},
	{access.ErrInvalidRequirement, ErrInvalidRequirement},
	{routebind.ErrInvalidNaturalKey, ErrInvalidNaturalKey},
}

// HTTPErrorFor maps err to the HTTPError to send. Unknown errors become
// ErrInternalServerError so internal details never reach the client.
func HTTPErrorFor(err error) HTTPError {
	if err == nil {
		return ErrInternalServerError
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, row := range errorTable {
		if errors.Is(err, row.target) {
			return row.http
		}
	}
	return ErrInternalServerError
}

// StatusFor returns the HTTP status code for err.
func StatusFor(err error) int {
	return HTTPErrorFor(err).Code
}
