package redis

import "errors"

var (
	// ErrInvalidConnectionURL means the REDIS_URL could not be parsed.
	ErrInvalidConnectionURL = errors.New("redis: invalid connection url")

	// ErrNotReady means the server never answered a ping within the
	// configured retry window.
	ErrNotReady = errors.New("redis: server not ready")

	// ErrHealthcheckFailed wraps ping failures from the readiness probe.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
