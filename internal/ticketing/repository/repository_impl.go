package repository

import (
	"context"

	"github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/boxofficehq/boxoffice/pkg/db/query"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) TicketsLeft(ctx context.Context, conn *gorm.DB, ticketTypeID uuid.UUID) (int, error) {
	// The routine returns NULL for an unknown id; absence maps to not-found
	// rather than a defaulted zero.
	left, ok, err := query.Scalar[int](ctx, conn,
		`SELECT ticketing.tickets_left(?)`,
		ticketTypeID,
	)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrNotFound
	}
	return left, nil
}

func (r *repo) CustomerOrderSummary(ctx context.Context, conn *gorm.DB, customerID uuid.UUID) ([]domain.OrderSummary, error) {
	return query.Select[domain.OrderSummary](ctx, conn,
		`SELECT order_id, created_at_utc, total_price, currency, item_count
		 FROM ticketing.customer_order_summary(?)`,
		customerID,
	)
}

func (r *repo) AdjustAvailableQuantity(ctx context.Context, conn *gorm.DB, ticketTypeID uuid.UUID, delta int) error {
	return query.Exec(ctx, conn,
		`CALL ticketing.adjust_available_quantity(?, ?)`,
		ticketTypeID,
		delta,
	)
}
