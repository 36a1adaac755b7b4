// Package common defines shared constants and sentinel errors used across
// the Streeek client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors (caller-correctable input, rejected before any I/O).
	ErrValidation = errors.New("validation failed")

	// Mapping errors (malformed upstream payload missing a required
	// identity field).
	ErrMissingIdentity = errors.New("missing identity field")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
