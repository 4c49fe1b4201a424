package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centraldesk/saascore/pkg/pg"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// Querier is the subset of pgxpool.Pool the store needs. Tests substitute a
// stub; production passes the pool directly.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is the PostgreSQL tenant directory. Its FindBySubdomain method
// satisfies tenant.Directory; the remaining methods manage tenant records.
type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// FindBySubdomain returns the minimal routing projection for a subdomain.
// An absent row maps to tenant.ErrTenantNotFound; any other failure is
// returned as-is so the middleware can fail the request instead of treating
// it as an unknown tenant.
func (s *Store) FindBySubdomain(ctx context.Context, subdomain string) (tenant.Record, error) {
	var rec tenant.Record
	var status string
	err := s.db.QueryRow(ctx,
		`SELECT id, status FROM tenants WHERE subdomain = $1`,
		subdomain,
	).Scan(&rec.ID, &status)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return tenant.Record{}, tenant.ErrTenantNotFound
		}
		return tenant.Record{}, fmt.Errorf("directory: find by subdomain: %w", err)
	}

	rec.Status, err = tenant.ParseStatus(status)
	if err != nil {
		return tenant.Record{}, fmt.Errorf("directory: tenant %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Get returns the full tenant row by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (tenant.Tenant, error) {
	var t tenant.Tenant
	var status string
	err := s.db.QueryRow(ctx,
		`SELECT id, subdomain, name, status, plan_id, created_at FROM tenants WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Subdomain, &t.Name, &status, &t.PlanID, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, fmt.Errorf("directory: get tenant: %w", err)
	}

	t.Status, err = tenant.ParseStatus(status)
	if err != nil {
		return tenant.Tenant{}, fmt.Errorf("directory: tenant %s: %w", id, err)
	}
	return t, nil
}

// Create registers a new tenant. New tenants start PENDING until activation.
func (s *Store) Create(ctx context.Context, subdomain, name, planID string) (tenant.Tenant, error) {
	t := tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      name,
		Status:    tenant.StatusPending,
		PlanID:    planID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO tenants (id, subdomain, name, status, plan_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Subdomain, t.Name, string(t.Status), t.PlanID, t.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return tenant.Tenant{}, ErrSubdomainTaken
		}
		return tenant.Tenant{}, fmt.Errorf("directory: create tenant: %w", err)
	}
	return t, nil
}

// UpdateStatus transitions a tenant's lifecycle status. Callers owning a
// cache should invalidate the tenant's subdomain afterwards.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("directory: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// ErrSubdomainTaken is returned when creating a tenant with a subdomain that
// already routes to another tenant.
var ErrSubdomainTaken = errors.New("directory: subdomain already taken")
