package repository

import (
	"database/sql"
	"strings"
)

// setClauses collects "col=?" fragments for dynamic UPDATE statements.
type setClauses []string

func (s setClauses) join() string { return strings.Join(s, ", ") }

// nullify converts an optional string into a driver value, mapping nil to
// SQL NULL.
func nullify(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullifyInt is nullify for optional ints.
func nullifyInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// strPtr converts a NullString into *string.
func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// intPtr converts a NullInt64 into *int.
func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// orDefault returns s unless it is empty, in which case def is used.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
