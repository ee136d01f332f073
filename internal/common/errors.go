// Package common defines shared constants and sentinel errors used across
// the storefront components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already registered")
	ErrorDuplicateTag   = errors.New("tag already exists")
	ErrorUnknownTag     = errors.New("unknown tag")

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("incorrect email or password")

	// Session-verification errors. None of these is fatal; the HTTP layer
	// collapses them into a uniform "unauthorized" answer.
	ErrorNoSession      = errors.New("no session")
	ErrorInvalidSession = errors.New("invalid session")

	// Token lifecycle errors.
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)
