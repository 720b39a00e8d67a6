package repositories

import "errors"

// ErrNotFound is returned, wrapped with the entity and ID, when a record does
// not exist. Callers use errors.Is to tell a missing record apart from an
// unexpected database failure.
var ErrNotFound = errors.New("not found")
