package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInvalidRange        = errors.New("invalid range")
	ErrPersistenceFailure  = errors.New("persistence failure")
	ErrNoActiveWorkLog     = errors.New("no active work log")
	ErrActiveWorkLogExists = errors.New("active work log already exists")
)
