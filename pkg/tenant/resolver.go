package tenant

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxRoutingKeyLength keeps routing keys DNS-label sized and bounds the
	// directory lookup input.
	MaxRoutingKeyLength = 63
)

// routingKeyPattern ensures DNS-safe labels: alphanumeric start, allows hyphens.
var routingKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Resolver derives the routing key from an HTTP request.
// Returns empty string if the request carries no routing key, error if the
// key is present but malformed.
type Resolver func(r *http.Request) (string, error)

func isValidRoutingKey(key string) bool {
	return key != "" && len(key) <= MaxRoutingKeyLength && routingKeyPattern.MatchString(key)
}

// IsValidRoutingKey reports whether key is usable as a subdomain routing key.
// Provisioning surfaces call it before writing a tenant so every stored
// subdomain is resolvable later.
func IsValidRoutingKey(key string) bool {
	return isValidRoutingKey(key)
}

// NewHostResolver extracts the routing key as the left-most DNS label of the
// request's host, lowercased. The reserved-key policy is applied by the
// middleware, not here.
func NewHostResolver() Resolver {
	return func(req *http.Request) (string, error) {
		host := req.Host

		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if host == "" {
			return "", nil
		}

		// Address-literal hosts ([::1], 127.0.0.1) carry no subdomain.
		if net.ParseIP(strings.Trim(host, "[]")) != nil {
			return "", nil
		}

		key := strings.ToLower(strings.TrimSpace(strings.Split(host, ".")[0]))
		if key == "" {
			return "", nil
		}
		if !isValidRoutingKey(key) {
			return "", fmt.Errorf("%w: host label %q", ErrInvalidIdentifier, key)
		}
		return key, nil
	}
}

// NewHeaderResolver reads the routing key from an HTTP header. Used by
// internal tooling that addresses tenants directly instead of via subdomain.
// Defaults to "X-Tenant-Key" if headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-Key"
	}

	return func(req *http.Request) (string, error) {
		value := strings.ToLower(strings.TrimSpace(req.Header.Get(headerName)))
		if value == "" {
			return "", nil
		}
		if !isValidRoutingKey(value) {
			return "", fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}
