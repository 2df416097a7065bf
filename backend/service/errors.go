package service

import "errors"

// Handlers map these to status codes; anything else is an internal error.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFileNotFound       = errors.New("file not found")
)
