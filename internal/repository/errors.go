package repository

import "errors"

// ErrNotFound is returned when no settings blob has been stored yet.
var ErrNotFound = errors.New("not found")
