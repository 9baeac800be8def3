package tenant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"slices"
	"strings"
)

// MaxSlugLength keeps slugs DNS compatible.
const MaxSlugLength = 63

// slugPattern ensures DNS-safe labels: alphanumeric start, allows hyphens, no dots.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Resolver determines which tenant a request belongs to.
// It is safe for concurrent use; all state lives in the Directory.
type Resolver struct {
	dir        Directory
	adminHost  string
	mainDomain string
	loopback   []string
}

// NewResolver creates a resolver backed by dir.
func NewResolver(dir Directory, cfg Config) *Resolver {
	if dir == nil {
		panic("tenant: directory cannot be nil")
	}

	loopback := make([]string, 0, len(cfg.LoopbackHosts))
	for _, h := range cfg.LoopbackHosts {
		if h = normalizeHost(h); h != "" {
			loopback = append(loopback, h)
		}
	}

	return &Resolver{
		dir:        dir,
		adminHost:  normalizeHost(cfg.AdminHost),
		mainDomain: normalizeHost(cfg.MainDomain),
		loopback:   loopback,
	}
}

// Resolve returns the active tenant for the request host and optional path slug.
//
// It returns (nil, nil) for the administrative context, an error matching
// ErrTenantNotFound when no active tenant applies, and any other error only
// when the directory fails.
func (r *Resolver) Resolve(ctx context.Context, host, pathSlug string) (*Tenant, error) {
	host = normalizeHost(host)
	pathSlug = strings.ToLower(strings.TrimSpace(pathSlug))

	if r.IsAdminContext(host, pathSlug) {
		return nil, nil
	}

	if pathSlug != "" {
		if !isValidSlug(pathSlug) {
			return nil, errors.Join(ErrTenantNotFound,
				fmt.Errorf("%w: path slug %q", ErrInvalidIdentifier, pathSlug))
		}
		return r.lookup(ctx, r.dir.FindBySlug, pathSlug)
	}

	if host == "" {
		return nil, ErrTenantNotFound
	}

	if sub, ok := r.subdomain(host); ok {
		t, err := r.lookup(ctx, r.dir.FindBySlug, sub)
		if err == nil || !errors.Is(err, ErrTenantNotFound) {
			return t, err
		}
		// Fall through to the custom domain, keeping the inactive marker if
		// the slug match was disabled and nothing else turns up.
		t, domainErr := r.lookup(ctx, r.dir.FindByDomain, host)
		if domainErr != nil && errors.Is(domainErr, ErrTenantNotFound) && errors.Is(err, ErrTenantInactive) {
			return nil, err
		}
		return t, domainErr
	}

	return r.lookup(ctx, r.dir.FindByDomain, host)
}

// IsAdminContext reports whether host/pathSlug address the administrative
// panel rather than a tenant. host must already be normalized.
func (r *Resolver) IsAdminContext(host, pathSlug string) bool {
	if r.adminHost != "" && host == r.adminHost {
		return true
	}
	return pathSlug == "" && slices.Contains(r.loopback, host)
}

func (r *Resolver) lookup(ctx context.Context, find func(context.Context, string) (*Tenant, error), key string) (*Tenant, error) {
	t, err := find(ctx, key)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("tenant lookup %q: %w", key, err)
	}
	if t == nil {
		return nil, ErrTenantNotFound
	}
	if !t.Active {
		return nil, errors.Join(ErrTenantNotFound, ErrTenantInactive)
	}
	return t, nil
}

// subdomain extracts the slug candidate from "<slug>.<mainDomain>".
func (r *Resolver) subdomain(host string) (string, bool) {
	if r.mainDomain == "" {
		return "", false
	}

	suffix := "." + r.mainDomain
	if !strings.HasSuffix(host, suffix) || len(host) == len(suffix) {
		return "", false
	}

	candidate := strings.TrimPrefix(host[:len(host)-len(suffix)], "www.")
	if candidate == "www" || !isValidSlug(candidate) {
		return "", false
	}
	return candidate, true
}

func isValidSlug(s string) bool {
	return len(s) > 0 && len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return strings.TrimSuffix(host, ".")
}
