package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Require is the gate every tenant-scoped operation calls before touching
// data. It returns the active tenant ID to scope the operation with.
//
// Under an installed no-tenant scope it returns ErrTenantRequired: the caller
// maps that to an authorization failure. With no scope installed at all it
// returns ErrScopeMisuse: the code path ran outside any request extent, and
// continuing with an unscoped query would risk cross-tenant exposure.
func Require(ctx context.Context) (uuid.UUID, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return uuid.UUID{}, ErrScopeMisuse
	}
	id, ok := scope.TenantID()
	if !ok {
		return uuid.UUID{}, ErrTenantRequired
	}
	return id, nil
}

// MustRequire is the assertion-style variant of Require for call sites that
// can only be reached from within a resolved tenant's request. It panics on
// misuse instead of degrading to an unscoped query.
func MustRequire(ctx context.Context) uuid.UUID {
	id, err := Require(ctx)
	if err != nil {
		panic(fmt.Sprintf("tenant: %v", err))
	}
	return id
}
