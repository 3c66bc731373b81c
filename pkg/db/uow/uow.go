// Package uow implements a unit-of-work persistence gateway: mutations are
// staged in memory and flushed atomically in a single transaction.
package uow

import (
	"context"
	"errors"

	"github.com/boxofficehq/boxoffice/pkg/db"
	"gorm.io/gorm"
)

// UnitOfWork stages pending inserts and flushes them in one transaction.
// An instance is bound to one logical request and is not safe for concurrent
// use; concurrent units against the same database rely on storage-level
// atomicity per commit.
type UnitOfWork struct {
	conn    *gorm.DB
	pending []any
}

// New creates a unit of work over the given connection.
func New(conn *gorm.DB) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Register stages entities for insertion. Owned collections (an order's
// items) travel with their parent through GORM association handling. No I/O
// happens until Commit.
func (u *UnitOfWork) Register(entities ...any) {
	u.pending = append(u.pending, entities...)
}

// Len returns the number of staged entities.
func (u *UnitOfWork) Len() int {
	return len(u.pending)
}

// Reset discards all staged entities.
func (u *UnitOfWork) Reset() {
	u.pending = nil
}

// Commit flushes every staged entity in a single transaction. On success the
// batch is cleared and entities carry any server-generated values. On failure
// the transaction is rolled back, nothing is visible, and the classified
// storage error is returned; the batch stays staged so the caller can decide.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.conn == nil {
		return errors.New("unit of work has no database handle")
	}
	if len(u.pending) == 0 {
		return nil
	}

	err := u.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entity := range u.pending {
			if err := tx.Create(entity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return db.Classify(err)
	}

	u.pending = nil
	return nil
}
