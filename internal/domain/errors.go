package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnauthenticated = errors.New("no authenticated caller")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingConfig   = errors.New("missing configuration")
	ErrRateLimited     = errors.New("rate limited")
)
