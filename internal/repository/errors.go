// Package repository implements raw-SQL data access for every table.  The
// sentinel values defined here let handlers distinguish failure scenarios
// without inspecting driver errors: ErrNotFound maps to HTTP 404,
// ErrDuplicate to 409 and ErrConflict to 409 for dependent-row refusals
// (e.g. deleting a technician that still has access logs).
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (MySQL error 1062).
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a delete cannot be performed because other
// rows still reference the target.
var ErrConflict = errors.New("conflict")

// isDup reports whether err is a MySQL duplicate-key violation.
func isDup(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key violation
// (1451: cannot delete parent row, 1452: missing referenced row).
func isFKViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "1451") || strings.Contains(err.Error(), "1452"))
}
