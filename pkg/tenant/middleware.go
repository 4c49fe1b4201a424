package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the inbound request to a scope and installs it before
// any downstream processing runs. Resolution is fail-open for unknown and
// inactive tenants (they normalize to the no-tenant scope, deferring the
// access decision to downstream authorization) and fail-closed for directory
// failures, which terminate the request.
func Middleware(dir Directory, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		resolver:     NewHostResolver(),
		cache:        NoOpCache{},
		cacheTTL:     DefaultCacheTTL,
		errorHandler: defaultErrorHandler,
	}
	WithReservedKeys(DefaultReservedKeys)(cfg)

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key, err := cfg.resolver(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// Absent or reserved routing keys belong to the central portal:
			// no directory query at all.
			if key == "" || cfg.isReserved(key) {
				serveScoped(w, r, next, NoTenant())
				return
			}

			if rec, ok := cfg.cache.Get(r.Context(), key); ok {
				serveScoped(w, r, next, scopeFor(rec))
				return
			}

			rec, err := dir.FindBySubdomain(r.Context(), key)
			if err != nil {
				if errors.Is(err, ErrTenantNotFound) {
					serveScoped(w, r, next, NoTenant())
					return
				}
				if cfg.logger != nil {
					cfg.logger.ErrorContext(r.Context(), "tenant directory lookup failed",
						slog.String("routing_key", key), slog.Any("error", err))
				}
				cfg.errorHandler(w, r, errors.Join(ErrDirectoryUnavailable, err))
				return
			}

			cfg.cache.Set(r.Context(), key, rec, cfg.cacheTTL)
			serveScoped(w, r, next, scopeFor(rec))
		})
	}
}

// scopeFor maps a directory record to a scope. Inactive tenants behave as if
// unresolved so downstream can present a uniform "tenant unavailable" response
// instead of a resolver-level failure.
func scopeFor(rec Record) Scope {
	if !rec.Status.IsActive() {
		return NoTenant()
	}
	return NewScope(rec.ID)
}

func serveScoped(w http.ResponseWriter, r *http.Request, next http.Handler, scope Scope) {
	next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
}

func (c *config) isReserved(key string) bool {
	_, ok := c.reserved[key]
	return ok
}

// RequireTenant creates middleware that rejects requests whose scope carries
// no tenant. Use it to protect route groups that only make sense inside a
// tenant's subdomain.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Tenant unavailable", http.StatusForbidden)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := Require(r.Context()); err != nil {
				errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
