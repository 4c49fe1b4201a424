package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// DefaultReservedKeys are the routing keys that always resolve to the
// no-tenant scope regardless of directory contents. They are claimed by the
// central authentication portal and shared infrastructure.
var DefaultReservedKeys = []string{"login", "api", "www"}

// DefaultCacheTTL bounds how stale a cached directory record may be.
const DefaultCacheTTL = 5 * time.Minute

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	resolver     Resolver
	cache        Cache
	cacheTTL     time.Duration
	reserved     map[string]struct{}
	errorHandler ErrorHandler
	skipPaths    []string
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithResolver sets a custom routing-key resolver.
func WithResolver(resolver Resolver) Option {
	return func(c *config) {
		if resolver != nil {
			c.resolver = resolver
		}
	}
}

// WithCache sets a custom cache implementation.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets the staleness bound for cached directory records.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithReservedKeys replaces the reserved routing-key list.
func WithReservedKeys(keys []string) Option {
	return func(c *config) {
		c.reserved = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			c.reserved[k] = struct{}{}
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely.
// Requests to skipped paths get no scope installed, so tenant-scoped
// operations on them fail with ErrScopeMisuse.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrDirectoryUnavailable):
		http.Error(w, "Tenant directory unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
