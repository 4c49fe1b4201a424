// Package redis connects to a Redis server with startup retries and exposes
// a health probe. The client backs the tenant directory's shared record cache.
package redis
