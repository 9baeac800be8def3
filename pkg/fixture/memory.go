package fixture

import (
	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Memory holds in-memory implementations of every read port, seeded from a Set.
type Memory struct {
	Directory  *tenant.MemoryDirectory
	School     *school.MemoryStore
	Grants     *access.MemoryGrantSource
	Principals *authn.MemoryLoader
}

// Memory builds in-memory stores from the set.
func (s *Set) Memory() *Memory {
	m := &Memory{
		Directory:  tenant.NewMemoryDirectory(s.Tenants...),
		School:     school.NewMemoryStore(),
		Grants:     access.NewMemoryGrantSource(s.Grants...),
		Principals: authn.NewMemoryLoader(s.Principals...),
	}
	for _, t := range s.Teachers {
		m.School.PutTeacher(t)
	}
	for _, mb := range s.Memberships {
		m.School.PutMembership(mb)
	}
	for _, st := range s.Students {
		m.School.PutStudent(st)
	}
	return m
}
