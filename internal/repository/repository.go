package repository

import "errors"

// ErrNotFound is returned when a query by id resolves to no row. Services
// translate it into the resource-specific not-found error.
var ErrNotFound = errors.New("row not found")
