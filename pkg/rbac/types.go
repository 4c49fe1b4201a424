package rbac

// MaxInheritanceDepth bounds role inheritance nesting.
const MaxInheritanceDepth = 10

// System role names. These roles are seeded into every installation and
// cannot be modified or removed by tenants.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// Role is a named permission bundle with optional inheritance.
//
// Permissions are dot-separated "resource.action" strings and support
// wildcards: "projects.*" grants every action on projects, "*" grants
// everything.
type Role struct {
	// Permissions directly granted to this role.
	Permissions []string

	// Inherits lists role names whose permissions are included.
	Inherits []string
}

// SystemRoles returns the immutable built-in role set. Each tier inherits
// the one below it.
func SystemRoles() map[string]Role {
	return map[string]Role{
		RoleViewer: {
			Permissions: []string{
				"projects.read",
				"beneficiaries.read",
				"attendances.read",
				"reports.read",
			},
		},
		RoleOperator: {
			Inherits: []string{RoleViewer},
			Permissions: []string{
				"beneficiaries.write",
				"attendances.write",
			},
		},
		RoleManager: {
			Inherits: []string{RoleOperator},
			Permissions: []string{
				"projects.*",
				"finances.*",
				"members.read",
			},
		},
		RoleAdmin: {
			Permissions: []string{"*"},
		},
	}
}

// IsSystemRole reports whether name is one of the built-in roles.
func IsSystemRole(name string) bool {
	switch name {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	}
	return false
}
