package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func IsUniqueViolationError(err error) bool {
	return hasPgErrorCode(err, pgerrcode.UniqueViolation)
}

// IsDeadlockError and IsSerializationFailureError classify transient
// failures that a fresh transaction attempt can resolve.
func IsDeadlockError(err error) bool {
	return hasPgErrorCode(err, pgerrcode.DeadlockDetected)
}

func IsSerializationFailureError(err error) bool {
	return hasPgErrorCode(err, pgerrcode.SerializationFailure)
}
