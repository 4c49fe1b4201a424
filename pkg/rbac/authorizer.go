package rbac

import (
	"context"
	"errors"
	"slices"
)

// Authorizer answers permission questions for roles, resolving inheritance
// and wildcards.
type Authorizer interface {
	// Can checks if a role has the specified permission (direct or inherited).
	Can(roleName, permission string) error

	// CanAny checks if a role has any of the provided permissions.
	CanAny(roleName string, permissions ...string) error

	// CanAll checks if a role has all of the provided permissions.
	CanAll(roleName string, permissions ...string) error

	// CanFromContext checks the role installed in the context.
	CanFromContext(ctx context.Context, permission string) error

	// VerifyRole returns ErrInvalidRole if the role does not exist.
	VerifyRole(role string) error

	// Roles returns all known role names, sorted.
	Roles() []string
}

// RoleSource provides the role map the authorizer is built from.
type RoleSource interface {
	Load(ctx context.Context) (map[string]Role, error)
}

// authorizer precomputes the flattened permission set per role at startup;
// the maps are immutable afterwards, which makes it safe for concurrent use.
type authorizer struct {
	rolePermissions map[string][]string
	roleNames       []string
}

// NewAuthorizer loads roles from source, validates inheritance, and flattens
// each role's permissions (including inherited ones) for constant-time checks.
func NewAuthorizer(ctx context.Context, source RoleSource) (Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = make(map[string]Role)
	}

	if err := validateInheritance(roles); err != nil {
		return nil, err
	}

	rolePermissions := make(map[string][]string, len(roles))
	names := make([]string, 0, len(roles))
	for name := range roles {
		perms := collectPermissions(name, roles, make(map[string]bool), 0)
		slices.Sort(perms)
		rolePermissions[name] = slices.Compact(perms)
		names = append(names, name)
	}
	slices.Sort(names)

	return &authorizer{
		rolePermissions: rolePermissions,
		roleNames:       names,
	}, nil
}

func (a *authorizer) Can(roleName, permission string) error {
	permissions, exists := a.rolePermissions[roleName]
	if !exists {
		return ErrInvalidRole
	}
	if !hasPermission(permissions, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

func (a *authorizer) CanAny(roleName string, permissions ...string) error {
	if len(permissions) == 0 {
		return nil
	}
	granted, exists := a.rolePermissions[roleName]
	if !exists {
		return ErrInvalidRole
	}
	for _, p := range permissions {
		if hasPermission(granted, p) {
			return nil
		}
	}
	return ErrInsufficientPermissions
}

func (a *authorizer) CanAll(roleName string, permissions ...string) error {
	if len(permissions) == 0 {
		return nil
	}
	granted, exists := a.rolePermissions[roleName]
	if !exists {
		return ErrInvalidRole
	}
	for _, p := range permissions {
		if !hasPermission(granted, p) {
			return ErrInsufficientPermissions
		}
	}
	return nil
}

func (a *authorizer) CanFromContext(ctx context.Context, permission string) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}
	return a.Can(role, permission)
}

func (a *authorizer) VerifyRole(role string) error {
	if _, exists := a.rolePermissions[role]; !exists {
		return ErrInvalidRole
	}
	return nil
}

func (a *authorizer) Roles() []string {
	return slices.Clone(a.roleNames)
}

// collectPermissions gathers direct and inherited permissions. Unknown
// inherited roles are skipped here; validateInheritance reports them first.
func collectPermissions(name string, roles map[string]Role, visited map[string]bool, depth int) []string {
	if depth > MaxInheritanceDepth || visited[name] {
		return nil
	}
	visited[name] = true

	role, exists := roles[name]
	if !exists {
		return nil
	}

	perms := slices.Clone(role.Permissions)
	for _, parent := range role.Inherits {
		perms = append(perms, collectPermissions(parent, roles, visited, depth+1)...)
	}
	return perms
}

func validateInheritance(roles map[string]Role) error {
	for name, role := range roles {
		for _, parent := range role.Inherits {
			if _, exists := roles[parent]; !exists {
				return errors.Join(ErrInvalidRole, errors.New("role "+name+" inherits unknown role "+parent))
			}
		}
	}

	// Detect cycles with a depth-first walk per role.
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(roles))

	var walk func(name string) error
	walk = func(name string) error {
		switch state[name] {
		case visiting:
			return ErrCircularInheritance
		case done:
			return nil
		}
		state[name] = visiting
		for _, parent := range roles[name].Inherits {
			if err := walk(parent); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for name := range roles {
		if err := walk(name); err != nil {
			return err
		}
	}
	return nil
}
