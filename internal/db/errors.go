package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by the store. Handlers translate these to HTTP
// statuses; everything else is an internal failure.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// notFound normalizes sql.ErrNoRows so callers never compare against
// driver-level sentinels.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a postgres unique constraint
// failure (e.g. the same content inserted into a playlist twice).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
