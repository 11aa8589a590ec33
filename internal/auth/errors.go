package auth

import "errors"

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
	ErrInvalidInput  = errors.New("auth: invalid input")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the login response never reveals which check failed.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken indicates the token failed validation. A bad token is a
	// normal return value, not an exceptional path.
	ErrInvalidToken = errors.New("auth: invalid token")
)
