package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
)

// PriceBook is the full pricing rule set for one product. One row per
// product; promo is a single optional window, never a list.
type PriceBook struct {
	ProductID        uuid.UUID         `gorm:"column:product_id;type:uuid;primaryKey"`
	SKU              string            `gorm:"column:sku;not null"`
	ProductName      string            `gorm:"column:product_name;not null"`
	Currency         enums.Currency    `gorm:"column:currency;type:text;not null;default:'USD'"`
	BasePrice        decimal.Decimal   `gorm:"column:base_price;type:numeric(12,2);not null"`
	PromoPrice       *decimal.Decimal  `gorm:"column:promo_price;type:numeric(12,2)"`
	PromoValidFrom   *time.Time        `gorm:"column:promo_valid_from"`
	PromoValidTo     *time.Time        `gorm:"column:promo_valid_to"`
	QuantityBreaks   []QuantityBreak   `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	TierPrices       []TierPrice       `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	AccountOverrides []AccountOverride `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// QuantityBreak prices a quantity range independent of tier. Ranges may
// overlap; resolution tie-breaks on the highest min_quantity.
type QuantityBreak struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	MinQuantity int             `gorm:"column:min_quantity;not null"`
	MaxQuantity *int            `gorm:"column:max_quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

// TierPrice assigns a product price to a tier id.
type TierPrice struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	TierID    string          `gorm:"column:tier_id;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

// AccountOverride pins a negotiated price to one dealer account.
type AccountOverride struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	AccountID uuid.UUID       `gorm:"column:account_id;type:uuid;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}
