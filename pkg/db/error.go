package db

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConstraintError reports a statement rejected by the storage layer because it
// would violate an invariant (integrity constraint or a routine's RAISE).
type ConstraintError struct {
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "constraint violation"
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// ConnectivityError reports that the storage layer was unreachable or the
// connection was lost mid-operation.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err != nil {
		return "database unreachable: " + e.Err.Error()
	}
	return "database unreachable"
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Classify wraps storage errors into the structured failure taxonomy.
// Errors that fit no category pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// Class 23: integrity constraint violation.
		// P0001: raise_exception from a plpgsql routine.
		case strings.HasPrefix(pgErr.Code, "23"), pgErr.Code == "P0001":
			return &ConstraintError{Message: pgErr.Message, Err: err}
		// Class 08: connection exception. 57P01-57P03: server shutdown.
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return &ConnectivityError{Err: err}
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ConnectivityError{Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConstraintError{Message: err.Error(), Err: err}
	}

	// Fallback string checks for drivers that do not expose typed errors
	// (the sqlite test driver in particular).
	msg := err.Error()
	switch {
	case strings.Contains(msg, "constraint failed"),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		return &ConstraintError{Message: msg, Err: err}
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "bad connection"):
		return &ConnectivityError{Err: err}
	}

	return err
}

// IsDuplicateKeyErr reports whether err is a unique-constraint violation.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
