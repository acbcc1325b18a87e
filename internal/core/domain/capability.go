package domain

// Capability names a single permitted action. Gating on capabilities rather
// than raw role strings keeps handler and service logic stable when roles
// are added.
type Capability string

const (
	CapManageUsers Capability = "users:manage"
	CapViewUsers   Capability = "users:view"
)

var roleCapabilities = map[string][]Capability{
	RoleSimpleMortal: {CapViewUsers},
	RoleAdmin:        {CapViewUsers, CapManageUsers},
}

// RoleCan reports whether the given role grants the capability. Unknown
// roles grant nothing.
func RoleCan(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}
