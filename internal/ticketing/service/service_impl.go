package service

import (
	"context"
	"strings"
	"time"

	"github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/boxofficehq/boxoffice/pkg/db/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("ticketing.service"),
		repo: p.Repo,
	}
}

// Seed inserts a demo ticket type and a demo order through one unit of work.
// The order total is computed from its items, keeping the
// total == sum(quantity*price) invariant the schema does not enforce.
func (s *Service) Seed(ctx context.Context) (domain.SeedResult, error) {
	customerID := uuid.New()
	ticketTypeID := uuid.New()

	price := decimal.NewFromFloat(99.99)
	ticketType := domain.TicketType{
		ID:                ticketTypeID,
		Name:              "VIP Ticket",
		Quantity:          decimal.NewFromInt(100),
		AvailableQuantity: decimal.NewFromInt(100),
		Price:             price,
	}

	orderID := uuid.New()
	items := []domain.OrderItem{
		{
			ID:           uuid.New(),
			OrderID:      orderID,
			TicketTypeID: ticketTypeID,
			Quantity:     2,
			Price:        price,
		},
	}

	order := domain.Order{
		ID:           orderID,
		CustomerID:   customerID,
		CreatedAtUTC: time.Now().UTC(),
		TotalPrice:   orderTotal(items),
		Items:        items,
	}

	unit := uow.New(s.db)
	unit.Register(&ticketType, &order)
	if err := unit.Commit(ctx); err != nil {
		s.log.Error("seed commit failed", zap.Error(err))
		return domain.SeedResult{}, err
	}

	return domain.SeedResult{CustomerID: customerID, TicketTypeID: ticketTypeID}, nil
}

func (s *Service) AvailableQuantity(ctx context.Context, req domain.AvailableQuantityRequest) (domain.AvailableQuantityResponse, error) {
	ticketTypeID, err := parseID(req.TicketTypeID, domain.ErrInvalidTicketTypeID)
	if err != nil {
		return domain.AvailableQuantityResponse{}, err
	}

	left, err := s.repo.TicketsLeft(ctx, s.db, ticketTypeID)
	if err != nil {
		return domain.AvailableQuantityResponse{}, err
	}

	return domain.AvailableQuantityResponse{
		TicketTypeID:      ticketTypeID,
		AvailableQuantity: left,
	}, nil
}

func (s *Service) OrderSummaries(ctx context.Context, req domain.OrderSummariesRequest) ([]domain.OrderSummary, error) {
	customerID, err := parseID(req.CustomerID, domain.ErrInvalidCustomerID)
	if err != nil {
		return nil, err
	}

	return s.repo.CustomerOrderSummary(ctx, s.db, customerID)
}

func (s *Service) AdjustQuantity(ctx context.Context, req domain.AdjustQuantityRequest) error {
	ticketTypeID, err := parseID(req.TicketTypeID, domain.ErrInvalidTicketTypeID)
	if err != nil {
		return err
	}
	if req.Delta == 0 {
		return domain.ErrInvalidDelta
	}

	return s.repo.AdjustAvailableQuantity(ctx, s.db, ticketTypeID, req.Delta)
}

func orderTotal(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func parseID(value string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, invalid
	}
	return id, nil
}
