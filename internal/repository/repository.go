package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// ErrNoRows is returned by updates that matched nothing.
var ErrNoRows = sql.ErrNoRows

// ErrDuplicate is returned when an insert collides with a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
