package access

import "strings"

// Role is the closed set of principal roles.
type Role uint8

const (
	RoleOther Role = iota
	RoleSuperAdmin
	RoleSchoolAdmin
	RoleTeacher
	RoleStudent
)

var roleNames = map[Role]string{
	RoleOther:       "other",
	RoleSuperAdmin:  "super_admin",
	RoleSchoolAdmin: "school_admin",
	RoleTeacher:     "teacher",
	RoleStudent:     "student",
}

// ParseRole maps a stored role name to a Role. Unknown names become RoleOther.
func ParseRole(s string) Role {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for role, name := range roleNames {
		if name == s {
			return role
		}
	}
	return RoleOther
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleOther]
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}
