package session

import "errors"

var (
	// ErrInvalidEmail is returned when the login email is empty or malformed.
	ErrInvalidEmail = errors.New("email address is invalid")
	// ErrMissingPassword is returned when the login password is empty.
	ErrMissingPassword = errors.New("password is required")
	// ErrNoSession is returned when an operation requires an authenticated
	// session and none exists.
	ErrNoSession = errors.New("no active session")
)
