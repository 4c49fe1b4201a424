// Package httpserver wraps net/http with environment-driven configuration,
// graceful shutdown on context cancellation or OS signals, and health probe
// handlers.
package httpserver
