package httpserver

import "errors"

var (
	// ErrStart wraps listener or serve failures during Run.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown wraps failures during graceful shutdown.
	ErrShutdown = errors.New("httpserver: failed to shut down gracefully")
)
