package tenant

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Tenant is a school with the configuration needed for request-scoped
// authorization decisions.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	Active       bool      `json:"active"`

	// Features lists the enabled feature keys (e.g. "ppdb", "public-news").
	Features []string `json:"features,omitempty"`

	// Modules maps each enabled module key to its enabled permission names.
	Modules map[string][]string `json:"modules,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
}

// HasFeature reports whether the feature key is enabled for the tenant.
func (t *Tenant) HasFeature(key string) bool {
	return slices.Contains(t.Features, key)
}

// HasModule reports whether the module key is enabled in the tenant configuration.
func (t *Tenant) HasModule(key string) bool {
	_, ok := t.Modules[key]
	return ok
}

// HasModulePermission reports whether permission is enabled for module.
func (t *Tenant) HasModulePermission(module, permission string) bool {
	perms, ok := t.Modules[module]
	if !ok {
		return false
	}
	return slices.Contains(perms, permission)
}
