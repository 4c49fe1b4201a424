// Package account manages global user identities and their per-tenant
// memberships.
//
// Identity is global: a user registers once and logs in anywhere. Access is
// per tenant: membership rows link users to tenants with a single role, and
// every membership query goes through the tenant gate so it cannot run
// outside a resolved tenant's request.
package account
