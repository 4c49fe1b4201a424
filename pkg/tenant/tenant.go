package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tenant. Tenants are never hard-deleted;
// cancellation moves them to StatusCancelled instead.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus converts a stored status string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusSuspended, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown tenant status %q", s)
}

// IsActive reports whether a tenant in this status may serve requests.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// Tenant is the full tenant record used by admin and provisioning surfaces.
// The subdomain is unique across all tenants and immutable after creation.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	PlanID    string    `json:"plan_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is the minimal projection of a tenant returned on the request
// resolution path. Resolution only needs identity and status; keeping the
// projection this small keeps the resolver's trust surface minimal.
type Record struct {
	ID     uuid.UUID
	Status Status
}

// Directory looks up tenants by their routing subdomain. Implementations must
// be safe for concurrent use by many in-flight requests.
//
// FindBySubdomain returns ErrTenantNotFound when no tenant owns the subdomain.
// Any other error means the backing store is unavailable and is treated as
// ErrDirectoryUnavailable by the resolution middleware.
type Directory interface {
	FindBySubdomain(ctx context.Context, subdomain string) (Record, error)
}

// DirectoryFunc adapts a function to the Directory interface.
type DirectoryFunc func(ctx context.Context, subdomain string) (Record, error)

func (f DirectoryFunc) FindBySubdomain(ctx context.Context, subdomain string) (Record, error) {
	return f(ctx, subdomain)
}
