// Package authz defines the single role-based access policy shared by the
// route guard and the API handlers, so each access rule is written once.
package authz

// Resource identifies a guarded area of the portal.
type Resource int

const (
	// AdminArea covers user administration (/dashboard/users, /api/users).
	AdminArea Resource = iota

	// ManagementArea covers test and question management.
	ManagementArea

	// Dashboard covers the general dashboard available to every role.
	Dashboard
)

var policy = map[Resource][]string{
	AdminArea:      {"admin"},
	ManagementArea: {"admin", "examiner"},
	Dashboard:      {"admin", "examiner", "candidate"},
}

// Allowed reports whether a role may access a resource. Unknown roles and
// unknown resources are denied.
func Allowed(role string, resource Resource) bool {
	for _, allowed := range policy[resource] {
		if role == allowed {
			return true
		}
	}
	return false
}
