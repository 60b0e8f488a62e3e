package domain

// Role enumerates dispatcher privilege tiers.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleChief     Role = "chief"
	RoleDisponent Role = "disponent"
	RoleAnalyst   Role = "analyst"
)

// ParseRole maps a raw string onto a known Role.
// Unknown values return false so callers fail closed.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleChief, RoleDisponent, RoleAnalyst:
		return Role(raw), true
	}
	return "", false
}
