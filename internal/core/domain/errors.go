package domain

import (
	"errors"
)

var (
	// ErrUserNotFound is returned when no record exists for the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown users and wrong passwords,
	// deliberately indistinct to avoid username enumeration.
	ErrInvalidCredentials = errors.New("incorrect ID or password")
	// ErrForbidden is returned when the caller's role lacks the required capability.
	ErrForbidden = errors.New("not having sufficient rights to modify the content")
	// ErrInvalidToken is returned for malformed or badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for structurally valid but expired tokens.
	ErrExpiredToken = errors.New("token expired")
	// ErrStoreUnavailable marks store connectivity failures so they are
	// never conflated with a not-found result.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports per-field failures detected before any store
// call, keyed by the wire name of the offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }
