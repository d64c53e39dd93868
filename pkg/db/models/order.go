package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

// Order is the purchase order header. Created exactly once, atomically with
// its line items, in status SUBMITTED.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	AccountID       uuid.UUID         `gorm:"column:account_id;type:uuid;not null;index"`
	CreatedBy       uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'SUBMITTED'"`
	Currency        enums.Currency    `gorm:"column:currency;type:text;not null"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(14,2);not null"`
	ShippingAddress types.Address     `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	PONumber        *string           `gorm:"column:po_number"`
	Notes           *string           `gorm:"column:notes"`
	TermsAccepted   bool              `gorm:"column:terms_accepted;not null;default:false"`
	SubmittedAt     time.Time         `gorm:"column:submitted_at;not null"`
	Lines           []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem is one cart line frozen into the order. Unit prices are the
// client-resolved values carried by the cart at submit time.
type OrderLineItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU             string          `gorm:"column:sku;not null"`
	Name            string          `gorm:"column:name;not null"`
	Qty             int             `gorm:"column:qty;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineTotal       decimal.Decimal `gorm:"column:line_total;type:numeric(14,2);not null"`
	PriceSource     *string         `gorm:"column:price_source"`
	SelectedOptions types.JSONMap   `gorm:"column:selected_options;type:jsonb;serializer:json"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
