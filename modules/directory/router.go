package directory

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/limits"
	"github.com/centraldesk/saascore/pkg/rbac"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// PermissionManageTenants guards the provisioning surface. Only roles whose
// permission set covers it (ADMIN via the full wildcard) may create tenants
// or change lifecycle status.
const PermissionManageTenants = "tenants.manage"

// Router exposes the tenant provisioning surface:
//
//	POST  /tenants               register a tenant (starts PENDING)
//	PATCH /tenants/{id}/status   transition lifecycle status
//
// Every route requires a verified access token whose role grants
// PermissionManageTenants. Status changes invalidate the subdomain in the
// routing cache so the new status takes effect without waiting out the TTL.
func Router(store *Store, cache tenant.Cache, plans limits.Service, tokens *jwt.Service, authorizer rbac.Authorizer) chi.Router {
	r := chi.NewRouter()

	r.Use(jwt.Middleware(tokens))
	r.Use(requirePermission(authorizer, PermissionManageTenants))

	r.Post("/tenants", handleCreateTenant(store, plans))
	r.Patch("/tenants/{id}/status", handleUpdateStatus(store, cache))

	return r
}

func requirePermission(authorizer rbac.Authorizer, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := jwt.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}

			ctx := rbac.SetRoleToContext(r.Context(), claims.Role)
			if err := authorizer.CanFromContext(ctx, permission); err != nil {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type createTenantRequest struct {
	Subdomain string `json:"subdomain"`
	Name      string `json:"name"`
	PlanID    string `json:"plan_id"`
}

func handleCreateTenant(store *Store, plans limits.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTenantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !tenant.IsValidRoutingKey(req.Subdomain) {
			writeError(w, http.StatusBadRequest, "invalid subdomain")
			return
		}
		if slices.Contains(tenant.DefaultReservedKeys, req.Subdomain) {
			writeError(w, http.StatusBadRequest, "subdomain is reserved")
			return
		}
		if err := plans.VerifyPlan(r.Context(), req.PlanID); err != nil {
			writeError(w, http.StatusBadRequest, "unknown plan")
			return
		}

		t, err := store.Create(r.Context(), req.Subdomain, req.Name, req.PlanID)
		switch {
		case errors.Is(err, ErrSubdomainTaken):
			writeError(w, http.StatusConflict, "subdomain already taken")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "failed to create tenant")
		default:
			writeJSON(w, http.StatusCreated, t)
		}
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func handleUpdateStatus(store *Store, cache tenant.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tenant id")
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		status, err := tenant.ParseStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}

		t, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				writeError(w, http.StatusNotFound, "tenant not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load tenant")
			return
		}

		if err := store.UpdateStatus(r.Context(), id, status); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update status")
			return
		}
		if cache != nil {
			cache.Delete(r.Context(), t.Subdomain)
		}

		t.Status = status
		writeJSON(w, http.StatusOK, t)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
