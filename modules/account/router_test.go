package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraldesk/saascore/modules/account"
	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/rbac"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// withScope installs a tenant scope the way the resolution middleware would.
func withScope(scope tenant.Scope, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(tenant.WithScope(r.Context(), scope)))
	})
}

func newRouterUnderTest(t *testing.T) (http.Handler, *fakeStorage, *jwt.Service, tenant.Scope) {
	t.Helper()

	tokens, err := jwt.New([]byte("router-test-signing-key-32-bytes!!!"), "saascore-test", time.Hour)
	require.NoError(t, err)

	authorizer, err := rbac.NewAuthorizer(context.Background(),
		rbac.NewInMemRoleSource(rbac.SystemRoles()))
	require.NoError(t, err)

	storage := newFakeStorage()
	svc := account.NewService(storage, tokens, nil)

	tenantID := uuid.New()
	scope := tenant.NewScope(tenantID)
	router := withScope(scope, account.Router(svc, tokens, authorizer))
	return router, storage, tokens, scope
}

func postJSON(t *testing.T, handler http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	t.Run("register then login", func(t *testing.T) {
		t.Parallel()

		router, storage, _, scope := newRouterUnderTest(t)

		w := postJSON(t, router, "/register", map[string]string{
			"email": "ana@example.com", "name": "Ana", "password": "super-secret",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		tenantID, _ := scope.TenantID()
		storage.addMembership(tenantID, storage.users["ana@example.com"].ID, "ADMIN")

		w = postJSON(t, router, "/login", map[string]string{
			"email": "ana@example.com", "password": "super-secret",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
	})

	t.Run("register validation", func(t *testing.T) {
		t.Parallel()

		router, _, _, _ := newRouterUnderTest(t)

		w := postJSON(t, router, "/register", map[string]string{"email": "", "password": ""}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = postJSON(t, router, "/register", map[string]string{
			"email": "ana@example.com", "password": "short",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		t.Parallel()

		router, _, _, _ := newRouterUnderTest(t)

		body := map[string]string{"email": "ana@example.com", "password": "super-secret"}
		require.Equal(t, http.StatusCreated, postJSON(t, router, "/register", body, nil).Code)
		assert.Equal(t, http.StatusConflict, postJSON(t, router, "/register", body, nil).Code)
	})

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		t.Parallel()

		router, _, _, _ := newRouterUnderTest(t)

		w := postJSON(t, router, "/login", map[string]string{
			"email": "ghost@example.com", "password": "whatever-pass",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_Members(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, role string) (http.Handler, string) {
		router, storage, tokens, scope := newRouterUnderTest(t)

		tenantID, _ := scope.TenantID()
		userID := uuid.New()
		storage.addMembership(tenantID, userID, role)

		token, err := tokens.Issue(userID.String(), tenantID.String(), role)
		require.NoError(t, err)
		return router, token
	}

	t.Run("manager lists members", func(t *testing.T) {
		t.Parallel()

		router, token := setup(t, "MANAGER")

		req := httptest.NewRequest("GET", "/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var members []account.Membership
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
		assert.Len(t, members, 1)
	})

	t.Run("viewer lacks members.read", func(t *testing.T) {
		t.Parallel()

		router, token := setup(t, "VIEWER")

		req := httptest.NewRequest("GET", "/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token is unauthorized", func(t *testing.T) {
		t.Parallel()

		router, _ := setup(t, "MANAGER")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/members", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no-tenant scope is forbidden even with a token", func(t *testing.T) {
		t.Parallel()

		tokens, err := jwt.New([]byte("router-test-signing-key-32-bytes!!!"), "saascore-test", time.Hour)
		require.NoError(t, err)
		authorizer, err := rbac.NewAuthorizer(context.Background(),
			rbac.NewInMemRoleSource(rbac.SystemRoles()))
		require.NoError(t, err)

		svc := account.NewService(newFakeStorage(), tokens, nil)
		router := withScope(tenant.NoTenant(), account.Router(svc, tokens, authorizer))

		token, err := tokens.Issue(uuid.New().String(), uuid.New().String(), "ADMIN")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
