package database

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record does not exist or is owned by
	// a different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when registration hits the unique email
	// constraint.
	ErrEmailTaken = errors.New("email already registered")

	// ErrValidation wraps input constraint violations (empty name,
	// non-positive target or count).
	ErrValidation = errors.New("validation failed")
)

// isUniqueViolation reports whether err is a unique constraint violation
// from either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
