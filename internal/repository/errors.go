// Package repository holds the persistence layer: the store interfaces the
// handlers depend on, a MySQL implementation of each and an in-memory one
// used when no database is configured and in tests.
package repository

import "errors"

// ErrNotFound is returned when the addressed row does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
