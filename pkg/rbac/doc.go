// Package rbac maps membership roles to permissions with inheritance and
// wildcard matching.
//
// Four system roles ship with every installation: ADMIN, MANAGER, OPERATOR
// and VIEWER. Each tier inherits the one below it; ADMIN holds the global
// wildcard. The authorizer flattens inheritance at startup so permission
// checks are simple slice scans with no locking.
package rbac
