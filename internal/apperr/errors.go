// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing note or vault path.
	ErrNotFound = errors.New("not found")
	// ErrInvalidVault marks a vault root that is absent or not a directory.
	ErrInvalidVault = errors.New("invalid vault path")
)
