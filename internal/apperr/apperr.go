// Package apperr holds the error kinds shared by every service.
// Handlers map them to HTTP statuses; services wrap them with %w so
// callers can match with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)
