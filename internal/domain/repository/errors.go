package repository

import "errors"

// ErrNotFound is returned by repositories when a referenced row does not
// exist. Callers distinguish it from store failures with errors.Is.
var ErrNotFound = errors.New("not found")
