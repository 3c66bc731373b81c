// Package query executes parameterized raw statements against server-side
// routines and hydrates their results into typed values. Every caller value
// is passed as a bound parameter, never spliced into statement text.
package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boxofficehq/boxoffice/pkg/db"
	"gorm.io/gorm"
)

// ShapeError reports a result set that does not match the expected shape,
// e.g. a scalar call returning zero or multiple rows.
type ShapeError struct {
	Expected int
	Got      int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("query returned %d rows, expected %d", e.Got, e.Expected)
}

// Scalar runs a single-value query and enforces an exactly-one-row result.
// A NULL value is reported as ok=false so the caller decides absence
// semantics instead of receiving a silently defaulted zero.
func Scalar[T any](ctx context.Context, conn *gorm.DB, stmt string, args ...any) (T, bool, error) {
	var zero T

	rows, err := conn.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return zero, false, db.Classify(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, db.Classify(err)
		}
		return zero, false, &ShapeError{Expected: 1, Got: 0}
	}

	var value sql.Null[T]
	if err := rows.Scan(&value); err != nil {
		return zero, false, db.Classify(err)
	}

	extra := 0
	for rows.Next() {
		extra++
	}
	if err := rows.Err(); err != nil {
		return zero, false, db.Classify(err)
	}
	if extra > 0 {
		return zero, false, &ShapeError{Expected: 1, Got: 1 + extra}
	}

	if !value.Valid {
		return zero, false, nil
	}
	return value.V, true, nil
}

// Select runs a set-returning query and hydrates each row into T by column
// name. An empty result set is a valid, successful empty slice.
func Select[T any](ctx context.Context, conn *gorm.DB, stmt string, args ...any) ([]T, error) {
	out := make([]T, 0)
	if err := conn.WithContext(ctx).Raw(stmt, args...).Scan(&out).Error; err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

// Exec runs a side-effecting statement (a procedure call) and returns the
// classified storage error, if any.
func Exec(ctx context.Context, conn *gorm.DB, stmt string, args ...any) error {
	if err := conn.WithContext(ctx).Exec(stmt, args...).Error; err != nil {
		return db.Classify(err)
	}
	return nil
}
