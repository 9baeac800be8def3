package routebind

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEntityNotFound is matched by every *NotFoundError.
	ErrEntityNotFound = errors.New("routebind.entity_not_found")

	// ErrInvalidNaturalKey is returned for non-scalar or empty route values.
	ErrInvalidNaturalKey = errors.New("routebind.invalid_natural_key")

	// ErrNoEntityInContext is returned when a handler expects a bound entity
	// that no middleware attached.
	ErrNoEntityInContext = errors.New("routebind.no_entity_in_context")
)

// NotFoundError reports a natural key that matches nothing inside a tenant.
type NotFoundError struct {
	Kind     Kind
	Key      string
	TenantID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in tenant %s", e.Kind, e.Key, e.TenantID)
}

// Is lets errors.Is match ErrEntityNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}
