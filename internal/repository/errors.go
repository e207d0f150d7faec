// Package repository defines error values that are reused across the
// repositories. These sentinels let handlers distinguish between failure
// scenarios without inspecting driver-specific errors: ErrEmailExists maps
// to HTTP 409 while anything else from the store is treated as an internal
// failure.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when an insert violates one of the unique
// email indexes. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062). Uniqueness is enforced by the indexes, so a race between
// two concurrent inserts is resolved here rather than by application-level
// locking.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
