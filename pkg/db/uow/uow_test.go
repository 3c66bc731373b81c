package uow

import (
	"context"
	"testing"
	"time"

	"github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTicketingDB attaches an in-memory database named "ticketing" so the
// schema-qualified table names resolve under sqlite.
func openTicketingDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`ATTACH DATABASE ':memory:' AS ticketing`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE ticketing.ticket_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		quantity NUMERIC NOT NULL,
		available_quantity NUMERIC NOT NULL,
		price NUMERIC NOT NULL
	)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE ticketing.orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		created_at_utc TIMESTAMP NOT NULL,
		total_price NUMERIC NOT NULL,
		currency TEXT NOT NULL
	)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE ticketing.order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		ticket_type_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC NOT NULL
	)`).Error)

	return conn
}

func demoOrder(customerID, ticketTypeID uuid.UUID) domain.Order {
	orderID := uuid.New()
	price := decimal.NewFromFloat(99.99)
	return domain.Order{
		ID:           orderID,
		CustomerID:   customerID,
		CreatedAtUTC: time.Now().UTC(),
		TotalPrice:   price.Mul(decimal.NewFromInt(2)),
		Currency:     "USD",
		Items: []domain.OrderItem{
			{
				ID:           uuid.New(),
				OrderID:      orderID,
				TicketTypeID: ticketTypeID,
				Quantity:     2,
				Price:        price,
			},
		},
	}
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterDoesNoIO", func(t *testing.T) {
		conn := openTicketingDB(t)
		unit := New(conn)

		ticketType := domain.TicketType{
			ID:                uuid.New(),
			Name:              "VIP Ticket",
			Quantity:          decimal.NewFromInt(100),
			AvailableQuantity: decimal.NewFromInt(100),
			Price:             decimal.NewFromFloat(99.99),
		}
		unit.Register(&ticketType)
		assert.Equal(t, 1, unit.Len())

		var count int64
		require.NoError(t, conn.Model(&domain.TicketType{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("CommitFlushesBatchWithItems", func(t *testing.T) {
		conn := openTicketingDB(t)
		unit := New(conn)

		ticketTypeID := uuid.New()
		ticketType := domain.TicketType{
			ID:                ticketTypeID,
			Name:              "VIP Ticket",
			Quantity:          decimal.NewFromInt(100),
			AvailableQuantity: decimal.NewFromInt(100),
			Price:             decimal.NewFromFloat(99.99),
		}
		order := demoOrder(uuid.New(), ticketTypeID)

		unit.Register(&ticketType, &order)
		require.NoError(t, unit.Commit(ctx))
		assert.Zero(t, unit.Len())

		var stored domain.Order
		require.NoError(t, conn.First(&stored, "id = ?", order.ID).Error)
		assert.True(t, stored.TotalPrice.Equal(decimal.NewFromFloat(199.98)),
			"total %s should equal sum of item quantity*price", stored.TotalPrice)

		var itemCount int64
		require.NoError(t, conn.Model(&domain.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.EqualValues(t, 1, itemCount)
	})

	t.Run("CurrencyDefaultsOnCreate", func(t *testing.T) {
		conn := openTicketingDB(t)
		unit := New(conn)

		order := demoOrder(uuid.New(), uuid.New())
		order.Currency = ""
		unit.Register(&order)
		require.NoError(t, unit.Commit(ctx))

		var stored domain.Order
		require.NoError(t, conn.First(&stored, "id = ?", order.ID).Error)
		assert.Equal(t, "USD", stored.Currency)
	})

	t.Run("CommitRollsBackAtomically", func(t *testing.T) {
		conn := openTicketingDB(t)
		unit := New(conn)

		first := demoOrder(uuid.New(), uuid.New())
		duplicate := demoOrder(uuid.New(), uuid.New())
		duplicate.ID = first.ID
		duplicate.Items = nil

		unit.Register(&first, &duplicate)
		err := unit.Commit(ctx)
		require.Error(t, err)

		// Nothing from the failed batch is visible, the first order included.
		var orderCount, itemCount int64
		require.NoError(t, conn.Model(&domain.Order{}).Count(&orderCount).Error)
		require.NoError(t, conn.Model(&domain.OrderItem{}).Count(&itemCount).Error)
		assert.Zero(t, orderCount)
		assert.Zero(t, itemCount)

		// The batch stays staged after a failed commit.
		assert.Equal(t, 2, unit.Len())
	})

	t.Run("CommitEmptyIsNoop", func(t *testing.T) {
		conn := openTicketingDB(t)
		assert.NoError(t, New(conn).Commit(ctx))
	})

	t.Run("ResetDiscardsBatch", func(t *testing.T) {
		conn := openTicketingDB(t)
		unit := New(conn)
		order := demoOrder(uuid.New(), uuid.New())
		unit.Register(&order)
		unit.Reset()
		assert.Zero(t, unit.Len())
	})
}
