package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether the error is a SQLite unique constraint
// failure. When column is provided, the helper additionally looks for the
// column text in the error message (SQLite names the offending columns, e.g.
// "UNIQUE constraint failed: project_cabinets.project_id,
// project_cabinets.sequence_number").
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if column == "" {
		return true
	}
	return strings.Contains(msg, column)
}

// IsNotFound reports whether the error marks a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
