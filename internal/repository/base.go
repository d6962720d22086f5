// Package repository implements the data access layer for the application.
package repository

import (
	"strings"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite phrasing covered for tests.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isNotNullError checks if a DB error is a NOT NULL integrity violation.
func isNotNullError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL not-null violation SQLSTATE 23502; SQLite phrasing covered for tests.
	return strings.Contains(msg, "not-null constraint") ||
		strings.Contains(msg, "not null constraint") ||
		strings.Contains(msg, "23502")
}
