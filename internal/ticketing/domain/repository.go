package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository invokes the server-side ticketing routines. The routines own
// their atomicity and invariant checks; the repository only binds parameters
// and hydrates results.
type Repository interface {
	// TicketsLeft invokes the scalar routine and returns the remaining
	// quantity. Returns ErrNotFound when the ticket type does not exist.
	TicketsLeft(ctx context.Context, conn *gorm.DB, ticketTypeID uuid.UUID) (int, error)

	// CustomerOrderSummary invokes the set-returning routine. A customer
	// without orders yields an empty slice, not an error.
	CustomerOrderSummary(ctx context.Context, conn *gorm.DB, customerID uuid.UUID) ([]OrderSummary, error)

	// AdjustAvailableQuantity invokes the adjustment procedure with a signed
	// delta. The procedure rejects adjustments that would leave
	// available_quantity outside [0, quantity].
	AdjustAvailableQuantity(ctx context.Context, conn *gorm.DB, ticketTypeID uuid.UUID, delta int) error
}
