// Package jwt issues and verifies HMAC-SHA256 access tokens and provides the
// Bearer middleware that installs parsed claims into the request context.
//
// Tokens are deliberately minimal: subject (user ID), optional tenant
// membership (tenant ID and role), issuer and temporal claims. Authorization
// decisions stay with the rbac package; this package only authenticates.
package jwt
