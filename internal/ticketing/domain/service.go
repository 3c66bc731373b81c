package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type SeedResult struct {
	CustomerID   uuid.UUID `json:"customerId"`
	TicketTypeID uuid.UUID `json:"ticketTypeId"`
}

type AvailableQuantityRequest struct {
	TicketTypeID string
}

type AvailableQuantityResponse struct {
	TicketTypeID      uuid.UUID `json:"ticketTypeId"`
	AvailableQuantity int       `json:"availableQuantity"`
}

type OrderSummariesRequest struct {
	CustomerID string
}

type AdjustQuantityRequest struct {
	TicketTypeID string
	Delta        int
}

type Service interface {
	Seed(ctx context.Context) (SeedResult, error)
	AvailableQuantity(ctx context.Context, req AvailableQuantityRequest) (AvailableQuantityResponse, error)
	OrderSummaries(ctx context.Context, req OrderSummariesRequest) ([]OrderSummary, error)
	AdjustQuantity(ctx context.Context, req AdjustQuantityRequest) error
}

var (
	ErrInvalidTicketTypeID = errors.New("invalid_ticket_type_id")
	ErrInvalidCustomerID   = errors.New("invalid_customer_id")
	ErrInvalidDelta        = errors.New("invalid_delta")
	ErrNotFound            = errors.New("not_found")
)
