package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/centraldesk/saascore/pkg/jwt"
	"github.com/centraldesk/saascore/pkg/rbac"
	"github.com/centraldesk/saascore/pkg/tenant"
)

// Router exposes the account endpoints:
//
//	POST /register       create a global user
//	POST /login          authenticate, returns an access token
//	GET  /members        list current tenant's members (auth + members.read)
func Router(svc *Service, tokens *jwt.Service, authorizer rbac.Authorizer) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleRegister(svc))
	r.Post("/login", handleLogin(svc))

	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(tokens))
		r.Use(tenant.RequireTenant(nil))
		r.Get("/members", handleListMembers(svc, authorizer))
	})

	return r
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func handleRegister(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Name, req.Password)
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken):
			writeError(w, http.StatusConflict, "email already registered")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "registration failed")
		default:
			writeJSON(w, http.StatusCreated, user)
		}
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func handleLogin(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "login failed")
		default:
			writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
		}
	}
}

func handleListMembers(svc *Service, authorizer rbac.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		ctx := rbac.SetRoleToContext(r.Context(), claims.Role)
		if err := authorizer.CanFromContext(ctx, "members.read"); err != nil {
			writeError(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		members, err := svc.storage.ListMembers(ctx)
		switch {
		case errors.Is(err, tenant.ErrTenantRequired), errors.Is(err, tenant.ErrScopeMisuse):
			writeError(w, http.StatusForbidden, "tenant unavailable")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "failed to list members")
		default:
			writeJSON(w, http.StatusOK, members)
		}
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
