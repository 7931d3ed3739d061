package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")

	// ErrNameTaken maps the store's unique constraint on the event name.
	ErrNameTaken = errors.New("event name already taken")

	// ErrInvalidID maps the store's identifier-format validation
	// (a lookup with a malformed UUID).
	ErrInvalidID = errors.New("invalid event id format")
)
