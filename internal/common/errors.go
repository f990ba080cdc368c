// Package common contains sentinel errors shared across client components.
package common

import "errors"

var (
	// ErrValidation marks a local precondition failure detected before any
	// network call (missing file, empty title, missing required id).
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a referenced record is absent, e.g. a
	// feed index that no longer maps to a video.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks operations that need an authenticated session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCreatorOnly marks operations restricted to the creator role.
	ErrCreatorOnly = errors.New("requires a creator account")
)
