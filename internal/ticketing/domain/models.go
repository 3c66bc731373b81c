package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCurrency is applied to orders created without an explicit currency.
const DefaultCurrency = "USD"

// TicketType is a purchasable class of ticket. AvailableQuantity is mutated
// only through the adjust-quantity procedure; the storage routine keeps
// 0 <= available_quantity <= quantity.
type TicketType struct {
	ID                uuid.UUID       `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name              string          `gorm:"column:name;not null" json:"name"`
	Quantity          decimal.Decimal `gorm:"column:quantity;type:numeric;not null" json:"quantity"`
	AvailableQuantity decimal.Decimal `gorm:"column:available_quantity;type:numeric;not null" json:"available_quantity"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric;not null" json:"price"`
}

func (TicketType) TableName() string { return "ticketing.ticket_types" }

// Order is a customer's purchase transaction. TotalPrice must equal the sum
// of its items' quantity*price; storage does not enforce this, the
// application does.
type Order struct {
	ID           uuid.UUID       `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CustomerID   uuid.UUID       `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	CreatedAtUTC time.Time       `gorm:"column:created_at_utc;not null" json:"created_at_utc"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric;not null" json:"total_price"`
	Currency     string          `gorm:"column:currency;not null" json:"currency"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "ticketing.orders" }

// BeforeCreate applies the currency default for orders built without one.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	return nil
}

// OrderItem is one line of a purchase. Price is a snapshot of the ticket
// type's price at purchase time. TicketTypeID is a soft reference: the
// schema declares no foreign key so historical items can outlive a removed
// ticket type.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	TicketTypeID uuid.UUID       `gorm:"column:ticket_type_id;type:uuid;not null" json:"ticket_type_id"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric;not null" json:"price"`
}

func (OrderItem) TableName() string { return "ticketing.order_items" }
