package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraldesk/saascore/modules/directory"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// fakeRow satisfies pgx.Row with a canned scan function.
type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeQuerier answers subdomain lookups from a map and lets tests inject
// failures.
type fakeQuerier struct {
	tenants  map[string]tenant.Record
	queryErr error
	execErr  error
	execTag  pgconn.CommandTag
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		if q.queryErr != nil {
			return q.queryErr
		}
		sub, _ := args[0].(string)
		rec, ok := q.tenants[sub]
		if !ok {
			return pgx.ErrNoRows
		}
		*dest[0].(*uuid.UUID) = rec.ID
		*dest[1].(*string) = string(rec.Status)
		return nil
	}}
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	return q.execTag, nil
}

func TestStore_FindBySubdomain(t *testing.T) {
	t.Parallel()

	t.Run("returns minimal record", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		store := directory.NewStore(&fakeQuerier{
			tenants: map[string]tenant.Record{
				"demo": {ID: id, Status: tenant.StatusActive},
			},
		})

		rec, err := store.FindBySubdomain(context.Background(), "demo")
		require.NoError(t, err)
		assert.Equal(t, id, rec.ID)
		assert.Equal(t, tenant.StatusActive, rec.Status)
	})

	t.Run("missing row maps to ErrTenantNotFound", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{tenants: map[string]tenant.Record{}})

		_, err := store.FindBySubdomain(context.Background(), "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("storage failure is not a not-found", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("connection reset")
		store := directory.NewStore(&fakeQuerier{queryErr: dbErr})

		_, err := store.FindBySubdomain(context.Background(), "demo")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("unknown status in row is an error", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{
			tenants: map[string]tenant.Record{
				"weird": {ID: uuid.New(), Status: tenant.Status("LIMBO")},
			},
		})

		_, err := store.FindBySubdomain(context.Background(), "weird")
		assert.Error(t, err)
	})
}

func TestStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("new tenants start pending", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{execTag: pgconn.NewCommandTag("INSERT 0 1")})

		created, err := store.Create(context.Background(), "acme", "Acme Inc", "basico")
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusPending, created.Status)
		assert.Equal(t, "acme", created.Subdomain)
		assert.NotEqual(t, uuid.UUID{}, created.ID)
	})

	t.Run("duplicate subdomain", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{
			execErr: &pgconn.PgError{Code: "23505"},
		})

		_, err := store.Create(context.Background(), "acme", "Acme Inc", "basico")
		assert.ErrorIs(t, err, directory.ErrSubdomainTaken)
	})
}

func TestStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("updates existing tenant", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")})
		assert.NoError(t, store.UpdateStatus(context.Background(), uuid.New(), tenant.StatusSuspended))
	})

	t.Run("zero rows affected maps to ErrTenantNotFound", func(t *testing.T) {
		t.Parallel()

		store := directory.NewStore(&fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")})
		err := store.UpdateStatus(context.Background(), uuid.New(), tenant.StatusActive)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}
