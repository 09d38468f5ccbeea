package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint, e.g. a duplicate user email.
var ErrConflict = errors.New("already exists")

// ErrInvalidReference is returned when a foreign key points at a row
// that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateError maps Postgres constraint violations onto the store's
// error taxonomy; everything else passes through unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrConflict
		case pqForeignKeyViolation:
			return ErrInvalidReference
		}
	}
	return err
}
