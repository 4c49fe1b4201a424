// Package tenant resolves every inbound HTTP request to exactly one tenant
// (or the tenant-less central portal) and propagates that identity through the
// request's entire call chain without explicit parameter passing.
//
// # Architecture
//
// The package is built around four pieces:
//
//  1. Directory — read-only lookup of tenant records by routing subdomain,
//     returning the minimal {identity, status} projection.
//  2. Scope — the immutable per-request value carried in context.Context,
//     either a resolved tenant identity or the no-tenant sentinel.
//  3. Middleware — derives the routing key from the host, applies the
//     reserved-key and status policy, and installs the scope.
//  4. Gate (Require) — the contract consumed by tenant-scoped operations,
//     which read the active scope from context instead of taking it as an
//     argument.
//
// # Resolution policy
//
// The routing key is the left-most DNS label of the request host, lowercased.
// Reserved keys (login, api, www by default) and absent keys resolve to the
// no-tenant scope without querying the directory. An unknown or inactive
// tenant also resolves to the no-tenant scope — the access-denial decision is
// deferred to downstream authorization so users get a uniform "tenant
// unavailable" response. A failing directory, by contrast, terminates the
// request: storage errors and not-found are never conflated.
//
// # Usage
//
//	mw := tenant.Middleware(directory,
//		tenant.WithCache(tenant.NewInMemoryCache(ctx)),
//		tenant.WithCacheTTL(10*time.Minute),
//	)
//	router.Use(mw)
//
//	func (s *Store) ListMembers(ctx context.Context) ([]Member, error) {
//		tenantID, err := tenant.Require(ctx)
//		if err != nil {
//			return nil, err
//		}
//		// every query is filtered by tenantID
//	}
//
// # Isolation
//
// Scopes ride on context.Context, so they are bound to the logical request,
// never to a worker goroutine. Two concurrent requests each observe only
// their own scope no matter how their continuations interleave, and nested
// installations shadow rather than merge.
package tenant
