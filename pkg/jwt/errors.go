package jwt

import "errors"

var (
	// ErrInvalidToken covers structural problems: wrong segment count,
	// undecodable parts, unparsable claims.
	ErrInvalidToken = errors.New("jwt: malformed token")

	// ErrExpiredToken means the token parsed and verified but is outside
	// its validity window.
	ErrExpiredToken = errors.New("jwt: token expired")

	// ErrMissingSigningKey rejects constructing a service without a key.
	ErrMissingSigningKey = errors.New("jwt: signing key required")

	// ErrMissingClaims rejects issuing or parsing into nil claims.
	ErrMissingClaims = errors.New("jwt: claims required")

	// ErrInvalidSignature means the token was not signed with our key.
	ErrInvalidSignature = errors.New("jwt: signature mismatch")

	// ErrUnexpectedSigningMethod rejects any algorithm other than HS256.
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
)
