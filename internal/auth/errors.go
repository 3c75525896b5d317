package auth

import "errors"

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUserNotFound       = errors.New("user not found")
)
