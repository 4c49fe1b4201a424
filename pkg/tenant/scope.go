package tenant

import "github.com/google/uuid"

// Scope is the immutable per-request value indicating which tenant (if any)
// the current execution belongs to. Exactly one Scope is created per inbound
// request by the resolution middleware; it is read-only afterwards and must
// not outlive the request it was created for.
type Scope struct {
	tenantID uuid.UUID
	resolved bool
}

// NewScope returns a scope bound to the given tenant.
func NewScope(tenantID uuid.UUID) Scope {
	return Scope{tenantID: tenantID, resolved: true}
}

// NoTenant returns the sentinel scope used for tenant-agnostic requests:
// the central portal, reserved subdomains, and unresolved or inactive tenants.
func NoTenant() Scope {
	return Scope{}
}

// TenantID returns the tenant the scope is bound to.
// ok is false for the no-tenant scope.
func (s Scope) TenantID() (uuid.UUID, bool) {
	return s.tenantID, s.resolved
}

// HasTenant reports whether the scope carries a resolved tenant identity.
func (s Scope) HasTenant() bool {
	return s.resolved
}

func (s Scope) String() string {
	if !s.resolved {
		return "no-tenant"
	}
	return s.tenantID.String()
}
