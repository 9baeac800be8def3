package access

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type grantKey struct {
	userID   uuid.UUID
	tenantID uuid.UUID
}

// MemoryGrantSource is a thread-safe in-memory GrantSource.
// It keeps copies so callers cannot mutate stored grants.
type MemoryGrantSource struct {
	mu     sync.RWMutex
	grants map[grantKey][]Grant
}

// NewMemoryGrantSource creates a source seeded with grants.
func NewMemoryGrantSource(grants ...Grant) *MemoryGrantSource {
	s := &MemoryGrantSource{grants: make(map[grantKey][]Grant)}
	for _, g := range grants {
		s.Put(g)
	}
	return s
}

// Put stores a grant, replacing any grant with the same ID.
func (s *MemoryGrantSource) Put(g Grant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := grantKey{userID: g.UserID, tenantID: g.TenantID}
	list := s.grants[key]
	for i := range list {
		if list[i].ID == g.ID {
			list[i] = g
			return
		}
	}
	s.grants[key] = append(list, g)
}

// ActiveGrant implements GrantSource. Ties on RequestedAt go to the lowest ID.
func (s *MemoryGrantSource) ActiveGrant(_ context.Context, userID, tenantID uuid.UUID, now time.Time) (*Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Grant
	for _, g := range s.grants[grantKey{userID: userID, tenantID: tenantID}] {
		if !g.IsActive(now) {
			continue
		}
		if found == nil || newerGrant(g, *found) {
			found = &g
		}
	}
	if found == nil {
		return nil, ErrGrantNotFound
	}
	return found, nil
}

func newerGrant(a, b Grant) bool {
	if !a.RequestedAt.Equal(b.RequestedAt) {
		return a.RequestedAt.After(b.RequestedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
