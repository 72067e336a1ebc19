// Package store provides storage errors shared by store
// implementations.
package store

import "errors"

// ErrNotFound is returned when a requested item does not exist in the store.
var ErrNotFound = errors.New("not found")
