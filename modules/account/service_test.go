package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraldesk/saascore/modules/account"
	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// fakeStorage is an in-memory Storage for service tests.
type fakeStorage struct {
	users       map[string]account.User            // by email
	memberships map[uuid.UUID]map[uuid.UUID]string // tenant -> user -> role
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:       make(map[string]account.User),
		memberships: make(map[uuid.UUID]map[uuid.UUID]string),
	}
}

func (f *fakeStorage) CreateUser(ctx context.Context, email, name, passwordHash string) (account.User, error) {
	if _, exists := f.users[email]; exists {
		return account.User{}, account.ErrEmailTaken
	}
	u := account.User{ID: uuid.New(), Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[email] = u
	return u, nil
}

func (f *fakeStorage) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	u, ok := f.users[email]
	if !ok {
		return account.User{}, account.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStorage) GetMembership(ctx context.Context, userID uuid.UUID) (account.Membership, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return account.Membership{}, err
	}
	role, ok := f.memberships[tenantID][userID]
	if !ok {
		return account.Membership{}, account.ErrMembershipNotFound
	}
	return account.Membership{UserID: userID, TenantID: tenantID, Role: role}, nil
}

func (f *fakeStorage) ListMembers(ctx context.Context) ([]account.Membership, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	var members []account.Membership
	for userID, role := range f.memberships[tenantID] {
		members = append(members, account.Membership{UserID: userID, TenantID: tenantID, Role: role})
	}
	return members, nil
}

func (f *fakeStorage) addMembership(tenantID, userID uuid.UUID, role string) {
	if f.memberships[tenantID] == nil {
		f.memberships[tenantID] = make(map[uuid.UUID]string)
	}
	f.memberships[tenantID][userID] = role
}

func newServiceUnderTest(t *testing.T) (*account.Service, *fakeStorage, *jwt.Service) {
	t.Helper()

	tokens, err := jwt.New([]byte("service-test-signing-key-32-bytes!!"), "saascore-test", time.Hour)
	require.NoError(t, err)

	storage := newFakeStorage()
	return account.NewService(storage, tokens, nil), storage, tokens
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		svc, storage, _ := newServiceUnderTest(t)

		user, err := svc.Register(context.Background(), "ana@example.com", "Ana", "super-secret")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)

		stored := storage.users["ana@example.com"]
		assert.NotEqual(t, "super-secret", stored.PasswordHash)
		assert.NoError(t, account.VerifyPassword(stored.PasswordHash, "super-secret"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newServiceUnderTest(t)
		_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "short")
		assert.ErrorIs(t, err, account.ErrPasswordTooShort)
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("central portal login carries identity only", func(t *testing.T) {
		t.Parallel()

		svc, _, tokens := newServiceUnderTest(t)
		user, err := svc.Register(context.Background(), "ana@example.com", "Ana", "super-secret")
		require.NoError(t, err)

		ctx := tenant.WithScope(context.Background(), tenant.NoTenant())
		token, err := svc.Login(ctx, "ana@example.com", "super-secret")
		require.NoError(t, err)

		var claims jwt.AccessClaims
		require.NoError(t, tokens.Parse(token, &claims))
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Empty(t, claims.TenantID)
		assert.Empty(t, claims.Role)
	})

	t.Run("tenant login binds membership", func(t *testing.T) {
		t.Parallel()

		svc, storage, tokens := newServiceUnderTest(t)
		user, err := svc.Register(context.Background(), "ana@example.com", "Ana", "super-secret")
		require.NoError(t, err)

		tenantID := uuid.New()
		storage.addMembership(tenantID, user.ID, "MANAGER")

		ctx := tenant.WithScope(context.Background(), tenant.NewScope(tenantID))
		token, err := svc.Login(ctx, "ana@example.com", "super-secret")
		require.NoError(t, err)

		var claims jwt.AccessClaims
		require.NoError(t, tokens.Parse(token, &claims))
		assert.Equal(t, tenantID.String(), claims.TenantID)
		assert.Equal(t, "MANAGER", claims.Role)
	})

	t.Run("valid credentials without membership are rejected", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newServiceUnderTest(t)
		_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "super-secret")
		require.NoError(t, err)

		ctx := tenant.WithScope(context.Background(), tenant.NewScope(uuid.New()))
		_, err = svc.Login(ctx, "ana@example.com", "super-secret")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newServiceUnderTest(t)
		_, err := svc.Register(context.Background(), "ana@example.com", "Ana", "super-secret")
		require.NoError(t, err)

		ctx := tenant.WithScope(context.Background(), tenant.NoTenant())
		_, err = svc.Login(ctx, "ana@example.com", "not-the-password")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})

	t.Run("unknown email reads like wrong password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newServiceUnderTest(t)

		ctx := tenant.WithScope(context.Background(), tenant.NoTenant())
		_, err := svc.Login(ctx, "ghost@example.com", "whatever-password")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})
}
