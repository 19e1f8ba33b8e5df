package service

import "errors"

// Validation failures surfaced to the adapter, which owns the user-facing
// phrasing. Store lookups fail with store.ErrNotFound; persistence failures
// surface as *storage.PersistenceError.
var (
	// ErrSelfReference is returned when an operation references a user id
	// and itself, such as linking a user as its own alt.
	ErrSelfReference = errors.New("user cannot reference itself")

	// ErrAlreadyAlt is returned when the link target is already linked as
	// an alt of some record.
	ErrAlreadyAlt = errors.New("user is already an alt")

	// ErrNotAnAlt is returned when an unlink names a pair that is not
	// currently linked.
	ErrNotAnAlt = errors.New("user is not an alt")

	// ErrValidation is returned for non-positive or otherwise invalid
	// numeric input.
	ErrValidation = errors.New("invalid value")
)
