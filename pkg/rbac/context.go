package rbac

import "context"

type roleCtxKey struct{}

// SetRoleToContext installs the caller's role for the current tenant
// membership. Handlers do this after verifying the access token, before any
// permission check runs.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext returns the installed role, if any.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}
