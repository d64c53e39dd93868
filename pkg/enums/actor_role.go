package enums

import "fmt"

// ActorRole distinguishes dealer-side callers from staff.
type ActorRole string

const (
	ActorRoleDealer ActorRole = "dealer"
	ActorRoleStaff  ActorRole = "staff"
)

var validActorRoles = []ActorRole{
	ActorRoleDealer,
	ActorRoleStaff,
}

// IsValid reports whether the role is recognized.
func (r ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseActorRole converts a raw string into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
