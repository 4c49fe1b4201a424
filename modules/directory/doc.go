// Package directory is the authoritative tenant registry: a PostgreSQL store
// implementing the routing lookup consumed by the tenant middleware, plus a
// Redis-backed record cache shared across service replicas.
package directory
