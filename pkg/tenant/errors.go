package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by a Directory when no tenant owns the
	// queried subdomain. The middleware normalizes it to the no-tenant scope.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrDirectoryUnavailable indicates the directory's backing store failed.
	// It is fatal for the current request and is never conflated with not-found.
	ErrDirectoryUnavailable = errors.New("tenant directory unavailable")

	// ErrInvalidIdentifier is returned when the routing key format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrTenantRequired is returned by the gate when a tenant-scoped operation
	// runs under the no-tenant scope. Recoverable; map it to an authorization
	// failure at the calling layer.
	ErrTenantRequired = errors.New("tenant required")

	// ErrScopeMisuse is returned by the gate when a tenant-scoped operation
	// runs with no scope installed at all. This is a programming defect: the
	// code path executed outside any request extent.
	ErrScopeMisuse = errors.New("tenant-scoped operation outside request scope")
)
