package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centraldesk/saascore/pkg/pg"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists users and tenant memberships.
//
// User lookups are tenant-agnostic: identity is global, and login has to
// find the user before any tenant is involved. Every membership operation is
// tenant-scoped and calls tenant.Require, so a call outside a resolved
// tenant's request fails instead of leaking rows across tenants.
type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// CreateUser registers a global user identity.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (User, error) {
	u := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("account: create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by email. Deliberately tenant-agnostic.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("account: get user by email: %w", err)
	}
	return u, nil
}

// AddMember adds a user to the current tenant with the given role.
func (s *Store) AddMember(ctx context.Context, userID uuid.UUID, role string) (Membership, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return Membership{}, err
	}

	m := Membership{
		UserID:    userID,
		TenantID:  tenantID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO user_tenants (user_id, tenant_id, role, created_at)
		 VALUES ($1, $2, $3, $4)`,
		m.UserID, m.TenantID, m.Role, m.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return Membership{}, ErrMemberExists
		}
		return Membership{}, fmt.Errorf("account: add member: %w", err)
	}
	return m, nil
}

// GetMembership returns the user's membership in the current tenant.
func (s *Store) GetMembership(ctx context.Context, userID uuid.UUID) (Membership, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return Membership{}, err
	}

	var m Membership
	err = s.db.QueryRow(ctx,
		`SELECT user_id, tenant_id, role, created_at FROM user_tenants
		 WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID,
	).Scan(&m.UserID, &m.TenantID, &m.Role, &m.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Membership{}, ErrMembershipNotFound
		}
		return Membership{}, fmt.Errorf("account: get membership: %w", err)
	}
	return m, nil
}

// ListMembers returns every membership of the current tenant.
func (s *Store) ListMembers(ctx context.Context) ([]Membership, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT user_id, tenant_id, role, created_at FROM user_tenants
		 WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("account: list members: %w", err)
	}
	defer rows.Close()

	var members []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.UserID, &m.TenantID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("account: list members: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("account: list members: %w", err)
	}
	return members, nil
}

// CountMembers reports the member count for a tenant. Shaped as a usage
// counter for plan quota checks, so it takes the tenant ID explicitly.
func (s *Store) CountMembers(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_tenants WHERE tenant_id = $1`,
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("account: count members: %w", err)
	}
	return count, nil
}
