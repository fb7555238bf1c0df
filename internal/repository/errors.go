package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Errors reported by the checkout transaction.
var (
	ErrSelectionNotFound   = errors.New("selection not found")
	ErrSelectionMismatch   = errors.New("selection does not belong to class")
	ErrNoSeatsAvailable    = errors.New("no seats available")
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

const uniqueViolation = "23505"

// isUniqueViolation recognises unique constraint errors from either Postgres driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
