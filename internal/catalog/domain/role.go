package domain

import "fmt"

// Role is the closed set of subject roles. It is parsed at system boundaries
// (database reads, token claims, signup forms) and compared as a value
// everywhere else; raw strings never travel through the auth core.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleUser          Role = "User"
	RoleOther         Role = "Other"
)

// ParseRole maps a boundary string onto the role set. Unknown values fail
// closed rather than defaulting.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator, RoleUser, RoleOther:
		return Role(s), nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }
