package account

import (
	"time"

	"github.com/google/uuid"
)

// User is a global identity. Users exist independently of tenants and gain
// access to a tenant through a Membership.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Membership links a user to a tenant with a single role. A user holds at
// most one membership per tenant.
type Membership struct {
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
