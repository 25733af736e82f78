// Package common defines shared sentinel errors used across the client and
// server layers of Lifetrack. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors. Login failures deliberately collapse to a single value so
	// callers cannot distinguish an unknown user from a wrong password.
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrInvalidToken      = errors.New("invalid token")
	ErrNoSession         = errors.New("no active session")

	// Storage tier errors. ErrStorageUnavailable is recoverable and triggers
	// the local-cache fallback path; ErrPersistFailure means neither tier
	// accepted the write.
	ErrStorageUnavailable = errors.New("remote storage unavailable")
	ErrPersistFailure     = errors.New("persist failure")
)
