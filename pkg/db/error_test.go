package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})

	t.Run("IntegrityViolation", func(t *testing.T) {
		err := Classify(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"pk_orders\""})

		var constraintErr *ConstraintError
		assert.ErrorAs(t, err, &constraintErr)
		assert.Contains(t, constraintErr.Message, "duplicate key")
	})

	t.Run("CheckViolation", func(t *testing.T) {
		err := Classify(&pgconn.PgError{Code: "23514", Message: "check constraint violated"})

		var constraintErr *ConstraintError
		assert.ErrorAs(t, err, &constraintErr)
	})

	t.Run("RaisedException", func(t *testing.T) {
		// plpgsql RAISE EXCEPTION from the adjustment procedure.
		err := Classify(&pgconn.PgError{Code: "P0001", Message: "adjustment -200 would leave available quantity out of range for ticket type x"})

		var constraintErr *ConstraintError
		assert.ErrorAs(t, err, &constraintErr)
		assert.Contains(t, constraintErr.Error(), "out of range")
	})

	t.Run("ConnectionException", func(t *testing.T) {
		err := Classify(&pgconn.PgError{Code: "08006", Message: "connection failure"})

		var connectivityErr *ConnectivityError
		assert.ErrorAs(t, err, &connectivityErr)
	})

	t.Run("ServerShutdown", func(t *testing.T) {
		err := Classify(&pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"})

		var connectivityErr *ConnectivityError
		assert.ErrorAs(t, err, &connectivityErr)
	})

	t.Run("SQLiteFallback", func(t *testing.T) {
		err := Classify(errors.New("UNIQUE constraint failed: ticket_types.id"))

		var constraintErr *ConstraintError
		assert.ErrorAs(t, err, &constraintErr)
	})

	t.Run("ConnectionRefusedFallback", func(t *testing.T) {
		err := Classify(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

		var connectivityErr *ConnectivityError
		assert.ErrorAs(t, err, &connectivityErr)
	})

	t.Run("UnknownPassesThrough", func(t *testing.T) {
		unknown := errors.New("something else")
		assert.Equal(t, unknown, Classify(unknown))
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "23505", Message: "duplicate"}
		err := Classify(cause)
		assert.ErrorIs(t, err, cause)
	})
}

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicateKeyErr(errors.New("duplicate key value violates unique constraint \"pk_orders\"")))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: orders.id")))
	assert.False(t, IsDuplicateKeyErr(errors.New("record not found")))
}
