package store

import "errors"

// ErrNotFound is returned when a requested admin does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// either the username column or the single-super-admin index.
var ErrDuplicate = errors.New("duplicate")
