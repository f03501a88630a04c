package repository

import "errors"

// Sentinel errors returned by the repositories. Handlers never see
// these directly; the service layer translates them into its own kinds.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrBookNotFound  = errors.New("book not found")
)
