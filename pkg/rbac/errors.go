package rbac

import "errors"

// Error values use stable dotted keys so API layers can map them to
// localized messages.
var (
	// ErrInvalidRole: the role name is not in the catalog.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrInsufficientPermissions: the role does not grant the permission.
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")

	// ErrRoleNotInContext: a context-based check ran before a role was installed.
	ErrRoleNotInContext = errors.New("rbac.role_not_in_context")

	// ErrCircularInheritance: the role graph contains an inheritance cycle.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")
)
