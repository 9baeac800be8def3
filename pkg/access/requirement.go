package access

import (
	"fmt"
	"strings"
)

// Kind selects which check a Requirement runs after tenant membership.
type Kind uint8

const (
	KindMembership Kind = iota
	KindFeature
	KindModule
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindMembership:
		return "membership"
	case KindFeature:
		return "feature"
	case KindModule:
		return "module"
	case KindPermission:
		return "permission"
	default:
		return "unknown"
	}
}

// Requirement is what a route demands from the principal.
type Requirement struct {
	Kind Kind
	// Key is the feature or module key. Empty for membership.
	Key string
	// Permission is set for KindPermission only.
	Permission string
}

// Membership requires only that the principal may act inside the tenant.
func Membership() Requirement { return Requirement{Kind: KindMembership} }

// Feature requires a tenant feature flag.
func Feature(key string) Requirement { return Requirement{Kind: KindFeature, Key: key} }

// Module requires access to a module.
func Module(key string) Requirement { return Requirement{Kind: KindModule, Key: key} }

// Permission requires a named permission inside a module.
func Permission(module, permission string) Requirement {
	return Requirement{Kind: KindPermission, Key: module, Permission: permission}
}

// ParsePermission parses "module:permission".
func ParsePermission(s string) (Requirement, error) {
	module, perm, ok := strings.Cut(strings.TrimSpace(s), ":")
	module, perm = strings.TrimSpace(module), strings.TrimSpace(perm)
	if !ok || module == "" || perm == "" || strings.Contains(perm, ":") {
		return Requirement{}, fmt.Errorf("%w: %q", ErrInvalidPermissionFormat, s)
	}
	return Permission(module, perm), nil
}

// ParseRequirement parses a route configuration string:
//
//	tenant               membership only
//	feature:<key>        feature flag
//	module:<key>         module access
//	<module>:<perm>      module permission
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	if s == "tenant" {
		return Membership(), nil
	}

	prefix, rest, _ := strings.Cut(s, ":")
	rest = strings.TrimSpace(rest)
	switch prefix {
	case "feature", "module":
		if rest == "" || strings.Contains(rest, ":") {
			return Requirement{}, fmt.Errorf("%w: %q", ErrInvalidRequirement, s)
		}
		if prefix == "feature" {
			return Feature(rest), nil
		}
		return Module(rest), nil
	}
	return ParsePermission(s)
}

// String renders the requirement in ParseRequirement syntax.
func (r Requirement) String() string {
	switch r.Kind {
	case KindMembership:
		return "tenant"
	case KindFeature:
		return "feature:" + r.Key
	case KindModule:
		return "module:" + r.Key
	case KindPermission:
		return r.Key + ":" + r.Permission
	default:
		return "unknown"
	}
}

func (r Requirement) validate() error {
	switch r.Kind {
	case KindMembership:
		return nil
	case KindFeature, KindModule:
		if r.Key == "" {
			return fmt.Errorf("%w: empty %s key", ErrInvalidRequirement, r.Kind)
		}
		return nil
	case KindPermission:
		if r.Key == "" || r.Permission == "" {
			return fmt.Errorf("%w: %q", ErrInvalidPermissionFormat, r.String())
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidRequirement, r.Kind)
	}
}
