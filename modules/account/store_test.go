package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraldesk/saascore/modules/account"
	"github.com/centraldesk/saascore/pkg/tenant"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeQuerier records the arguments of the last statement and serves canned
// answers.
type fakeQuerier struct {
	memberships map[uuid.UUID]account.Membership // keyed by tenant ID
	execErr     error
	lastSQL     string
	lastArgs    []any
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL, q.lastArgs = sql, args
	return fakeRow{scan: func(dest ...any) error {
		tenantID, ok := args[1].(uuid.UUID)
		if !ok {
			return pgx.ErrNoRows
		}
		m, found := q.memberships[tenantID]
		if !found {
			return pgx.ErrNoRows
		}
		*dest[0].(*uuid.UUID) = m.UserID
		*dest[1].(*uuid.UUID) = m.TenantID
		*dest[2].(*string) = m.Role
		*dest[3].(*time.Time) = m.CreatedAt
		return nil
	}}
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL, q.lastArgs = sql, args
	return nil, pgx.ErrNoRows
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL, q.lastArgs = sql, args
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestStore_GateEnforcement(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("membership ops without any scope fail loudly", func(t *testing.T) {
		t.Parallel()

		store := account.NewStore(&fakeQuerier{})
		ctx := context.Background()

		_, err := store.AddMember(ctx, userID, "VIEWER")
		assert.ErrorIs(t, err, tenant.ErrScopeMisuse)

		_, err = store.GetMembership(ctx, userID)
		assert.ErrorIs(t, err, tenant.ErrScopeMisuse)

		_, err = store.ListMembers(ctx)
		assert.ErrorIs(t, err, tenant.ErrScopeMisuse)
	})

	t.Run("membership ops under no-tenant scope require a tenant", func(t *testing.T) {
		t.Parallel()

		store := account.NewStore(&fakeQuerier{})
		ctx := tenant.WithScope(context.Background(), tenant.NoTenant())

		_, err := store.AddMember(ctx, userID, "VIEWER")
		assert.ErrorIs(t, err, tenant.ErrTenantRequired)

		_, err = store.GetMembership(ctx, userID)
		assert.ErrorIs(t, err, tenant.ErrTenantRequired)

		_, err = store.ListMembers(ctx)
		assert.ErrorIs(t, err, tenant.ErrTenantRequired)
	})

	t.Run("queries are filtered by the scoped tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		q := &fakeQuerier{
			memberships: map[uuid.UUID]account.Membership{
				tenantID: {UserID: userID, TenantID: tenantID, Role: "OPERATOR", CreatedAt: time.Now()},
			},
		}
		store := account.NewStore(q)
		ctx := tenant.WithScope(context.Background(), tenant.NewScope(tenantID))

		m, err := store.GetMembership(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, m.TenantID)
		assert.Equal(t, "OPERATOR", m.Role)
		assert.Contains(t, q.lastArgs, tenantID)
	})

	t.Run("another tenant's scope sees no membership", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		q := &fakeQuerier{
			memberships: map[uuid.UUID]account.Membership{
				tenantID: {UserID: userID, TenantID: tenantID, Role: "OPERATOR"},
			},
		}
		store := account.NewStore(q)
		ctx := tenant.WithScope(context.Background(), tenant.NewScope(uuid.New()))

		_, err := store.GetMembership(ctx, userID)
		assert.ErrorIs(t, err, account.ErrMembershipNotFound)
	})
}

func TestStore_Users(t *testing.T) {
	t.Parallel()

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		store := account.NewStore(&fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}})
		_, err := store.CreateUser(context.Background(), "a@b.c", "A", "hash")
		assert.ErrorIs(t, err, account.ErrEmailTaken)
	})

	t.Run("create user needs no tenant scope", func(t *testing.T) {
		t.Parallel()

		store := account.NewStore(&fakeQuerier{})
		u, err := store.CreateUser(context.Background(), "a@b.c", "A", "hash")
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", u.Email)
	})
}
