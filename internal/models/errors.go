package models

import "errors"

// ErrNotFound is returned when an operation targets a record that does not
// exist. Callers surface it as a 404 instead of silently ignoring the id.
var ErrNotFound = errors.New("record not found")
