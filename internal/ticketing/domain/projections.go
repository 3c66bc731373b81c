package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is a query-only projection produced by the
// customer_order_summary routine. It is hydrated per result row and never
// persisted. ItemCount is the summed quantity across the order's items.
type OrderSummary struct {
	OrderID      uuid.UUID       `gorm:"column:order_id" json:"order_id"`
	CreatedAtUTC time.Time       `gorm:"column:created_at_utc" json:"created_at_utc"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price" json:"total_price"`
	Currency     string          `gorm:"column:currency" json:"currency"`
	ItemCount    int             `gorm:"column:item_count" json:"item_count"`
}
