// Package limits enforces per-plan resource quotas and feature module gating
// for tenants.
//
// Plans come from a Source (an in-memory map or a YAML catalog file) and map
// countable resources to limits, with -1 meaning unlimited. Usage counters
// are registered per resource at startup; the service combines catalog and
// counters to answer "can this tenant create one more X" and "does this
// tenant's plan include module Y".
package limits
