package ds

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnknownService      = errors.New("unknown service")
	ErrUnknownPackage      = errors.New("unknown package")
	ErrValidationFailed    = errors.New("validation failed")
	ErrDistanceUnavailable = errors.New("distance unavailable")
)
