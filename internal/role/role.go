package role

import (
	"fmt"
	"strings"
)

// Role is the closed set of portal roles. The backend stores the same
// strings, so Parse is the only place a raw value becomes a Role.
type Role string

const (
	Student    Role = "student"
	Faculty    Role = "faculty"
	Admin      Role = "admin"
	SuperAdmin Role = "super-admin"
)

func Parse(raw string) (Role, error) {
	switch r := Role(strings.TrimSpace(strings.ToLower(raw))); r {
	case Student, Faculty, Admin, SuperAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) Valid() bool {
	switch r {
	case Student, Faculty, Admin, SuperAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a holder of r may enter a screen requiring
// required. super-admin covers admin screens; nothing covers super-admin
// except itself.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return r == SuperAdmin && required == Admin
}

// Landing is the area root a user is sent to after login.
func (r Role) Landing() string {
	switch r {
	case Admin, SuperAdmin:
		return "/admin"
	case Faculty:
		return "/faculty"
	default:
		return "/student"
	}
}

func (r Role) String() string { return string(r) }
