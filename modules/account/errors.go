package account

import "errors"

var (
	ErrUserNotFound       = errors.New("account: user not found")
	ErrEmailTaken         = errors.New("account: email already registered")
	ErrMembershipNotFound = errors.New("account: membership not found")
	ErrMemberExists       = errors.New("account: user is already a member of this tenant")
	ErrInvalidCredentials = errors.New("account: invalid credentials")
	ErrPasswordTooShort   = errors.New("account: password must be at least 8 characters")
)
