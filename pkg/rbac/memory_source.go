package rbac

import (
	"context"
	"slices"
	"sync"
)

// inMemRoleSource serves roles from a deep-copied in-memory map.
type inMemRoleSource struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewInMemRoleSource creates a RoleSource from a map of roles. The input is
// deep-copied so later mutations by the caller have no effect.
func NewInMemRoleSource(roles map[string]Role) RoleSource {
	rolesCopy := make(map[string]Role, len(roles))
	for name, role := range roles {
		rolesCopy[name] = Role{
			Permissions: slices.Clone(role.Permissions),
			Inherits:    slices.Clone(role.Inherits),
		}
	}
	return &inMemRoleSource{roles: rolesCopy}
}

// Load returns the internal map; the authorizer treats it as read-only.
func (s *inMemRoleSource) Load(ctx context.Context) (map[string]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles, nil
}
