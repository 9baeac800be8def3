package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/school"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

// Set is a resolved fixture with every reference replaced by an ID.
type Set struct {
	Tenants     []*tenant.Tenant
	Principals  []*access.Principal
	Teachers    []*school.Teacher
	Memberships []school.Membership
	Students    []*school.Student
	Grants      []access.Grant
}

type fileTenant struct {
	ID           uuid.UUID           `yaml:"id"`
	Name         string              `yaml:"name"`
	Slug         string              `yaml:"slug"`
	CustomDomain string              `yaml:"custom_domain"`
	Active       bool                `yaml:"active"`
	Features     []string            `yaml:"features"`
	Modules      map[string][]string `yaml:"modules"`
}

type fileUser struct {
	ID     uuid.UUID `yaml:"id"`
	Role   string    `yaml:"role"`
	Tenant string    `yaml:"tenant"`
}

type fileBranch struct {
	Tenant string `yaml:"tenant"`
	Active bool   `yaml:"active"`
}

type fileTeacher struct {
	ID           uuid.UUID           `yaml:"id"`
	NIK          string              `yaml:"nik"`
	Tenant       string              `yaml:"tenant"`
	User         uuid.UUID           `yaml:"user"`
	Name         string              `yaml:"name"`
	Duties       []string            `yaml:"duties"`
	ModuleAccess map[string][]string `yaml:"module_access"`
	Branches     []fileBranch        `yaml:"branches"`
}

type fileStudent struct {
	ID     uuid.UUID `yaml:"id"`
	NIS    string    `yaml:"nis"`
	Tenant string    `yaml:"tenant"`
	User   uuid.UUID `yaml:"user"`
	Name   string    `yaml:"name"`
}

type fileGrant struct {
	ID          uuid.UUID  `yaml:"id"`
	User        uuid.UUID  `yaml:"user"`
	Tenant      string     `yaml:"tenant"`
	Status      string     `yaml:"status"`
	RequestedAt time.Time  `yaml:"requested_at"`
	ApprovedAt  *time.Time `yaml:"approved_at"`
	ExpiresAt   *time.Time `yaml:"expires_at"`
}

type file struct {
	Tenants  []fileTenant  `yaml:"tenants"`
	Users    []fileUser    `yaml:"users"`
	Teachers []fileTeacher `yaml:"teachers"`
	Students []fileStudent `yaml:"students"`
	Grants   []fileGrant   `yaml:"grants"`
}

// LoadFile reads and resolves a fixture file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadFixture, err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads and resolves a fixture document.
func Load(r io.Reader) (*Set, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrParseFixture, err)
	}
	return doc.resolve()
}

func (doc *file) resolve() (*Set, error) {
	set := &Set{}
	now := time.Now().UTC()

	tenants := make(map[string]*tenant.Tenant, len(doc.Tenants))
	for _, ft := range doc.Tenants {
		if ft.Slug == "" {
			return nil, fmt.Errorf("%w: tenant slug", ErrMissingField)
		}
		if _, dup := tenants[ft.Slug]; dup {
			return nil, fmt.Errorf("%w: tenant %q", ErrDuplicateRecord, ft.Slug)
		}
		t := &tenant.Tenant{
			ID:           orNew(ft.ID),
			Name:         ft.Name,
			Slug:         ft.Slug,
			CustomDomain: ft.CustomDomain,
			Active:       ft.Active,
			Features:     ft.Features,
			Modules:      ft.Modules,
			CreatedAt:    now,
		}
		if t.Modules == nil {
			t.Modules = map[string][]string{}
		}
		tenants[ft.Slug] = t
		set.Tenants = append(set.Tenants, t)
	}

	tenantID := func(slug string) (uuid.UUID, error) {
		t, ok := tenants[slug]
		if !ok {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownTenant, slug)
		}
		return t.ID, nil
	}

	principals := make(map[uuid.UUID]*access.Principal, len(doc.Users))
	for _, fu := range doc.Users {
		if fu.ID == uuid.Nil {
			return nil, fmt.Errorf("%w: user id", ErrMissingField)
		}
		if _, dup := principals[fu.ID]; dup {
			return nil, fmt.Errorf("%w: user %s", ErrDuplicateRecord, fu.ID)
		}
		p := &access.Principal{ID: fu.ID, Role: access.ParseRole(fu.Role)}
		if fu.Tenant != "" {
			id, err := tenantID(fu.Tenant)
			if err != nil {
				return nil, err
			}
			p.HomeTenantID = id
		}
		principals[fu.ID] = p
		set.Principals = append(set.Principals, p)
	}

	principal := func(id uuid.UUID) (*access.Principal, error) {
		if id == uuid.Nil {
			return nil, nil
		}
		p, ok := principals[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, id)
		}
		return p, nil
	}

	for _, ft := range doc.Teachers {
		home, err := tenantID(ft.Tenant)
		if err != nil {
			return nil, err
		}
		if ft.NIK == "" {
			return nil, fmt.Errorf("%w: teacher nik", ErrMissingField)
		}
		t := &school.Teacher{
			ID:           orNew(ft.ID),
			NIK:          ft.NIK,
			TenantID:     home,
			UserID:       ft.User,
			Name:         ft.Name,
			Duties:       ft.Duties,
			ModuleAccess: ft.ModuleAccess,
			CreatedAt:    now,
		}
		p, err := principal(ft.User)
		if err != nil {
			return nil, err
		}
		if p != nil {
			p.TeacherID = t.ID
		}
		set.Teachers = append(set.Teachers, t)

		for _, b := range ft.Branches {
			branch, err := tenantID(b.Tenant)
			if err != nil {
				return nil, err
			}
			set.Memberships = append(set.Memberships, school.Membership{TeacherID: t.ID, TenantID: branch, Active: b.Active})
		}
	}

	for _, fs := range doc.Students {
		owner, err := tenantID(fs.Tenant)
		if err != nil {
			return nil, err
		}
		if fs.NIS == "" {
			return nil, fmt.Errorf("%w: student nis", ErrMissingField)
		}
		st := &school.Student{ID: orNew(fs.ID), NIS: fs.NIS, TenantID: owner, UserID: fs.User, Name: fs.Name, CreatedAt: now}
		p, err := principal(fs.User)
		if err != nil {
			return nil, err
		}
		if p != nil {
			p.StudentID = st.ID
		}
		set.Students = append(set.Students, st)
	}

	for _, fg := range doc.Grants {
		tid, err := tenantID(fg.Tenant)
		if err != nil {
			return nil, err
		}
		if _, err := principal(fg.User); err != nil {
			return nil, err
		}
		requested := fg.RequestedAt
		if requested.IsZero() {
			requested = now
		}
		set.Grants = append(set.Grants, access.Grant{
			ID:          orNew(fg.ID),
			UserID:      fg.User,
			TenantID:    tid,
			Status:      access.GrantStatus(fg.Status),
			RequestedAt: requested,
			ApprovedAt:  fg.ApprovedAt,
			ExpiresAt:   fg.ExpiresAt,
		})
	}

	return set, nil
}

func orNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
