package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which pricing mechanism produced an effective price.
type Source string

const (
	SourceNone            Source = "NONE"
	SourcePromo           Source = "PROMO"
	SourceAccountOverride Source = "ACCOUNT_OVERRIDE"
	SourceQuantityBreak   Source = "QUANTITY_BREAK"
	SourceVolumeTier      Source = "VOLUME_TIER"
	SourceTierFallback    Source = "TIER_FALLBACK"
	SourceBase            Source = "BASE"
)

// Promo is a time-bound promotional price. Bounds are inclusive; a nil
// bound is open-ended.
type Promo struct {
	Price     decimal.Decimal `json:"price"`
	ValidFrom *time.Time      `json:"valid_from,omitempty"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
}

// QuantityBreak prices a quantity range. Ranges may overlap; resolution
// picks the matching break with the highest MinQuantity.
type QuantityBreak struct {
	MinQuantity int             `json:"min_quantity"`
	MaxQuantity *int            `json:"max_quantity,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// PriceBook is the full pricing rule set for one product. It is a plain
// snapshot so it can be cached and resolved without touching storage.
type PriceBook struct {
	ProductID        string                     `json:"product_id"`
	SKU              string                     `json:"sku"`
	ProductName      string                     `json:"product_name"`
	Currency         string                     `json:"currency"`
	BasePrice        decimal.Decimal            `json:"base_price"`
	Promo            *Promo                     `json:"promo,omitempty"`
	QuantityBreaks   []QuantityBreak            `json:"quantity_breaks,omitempty"`
	TierPrices       map[string]decimal.Decimal `json:"tier_prices,omitempty"`
	AccountOverrides map[string]decimal.Decimal `json:"account_overrides,omitempty"`
}

// Tier is a named pricing bracket. A tier with a MinQuantity or
// MaxQuantity is a volume tier eligible for quantity matching; a tier
// with neither is only reachable through direct account assignment.
type Tier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MinQuantity *int   `json:"min_quantity,omitempty"`
	MaxQuantity *int   `json:"max_quantity,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
}

// IsVolume reports whether the tier declares a quantity range.
func (t Tier) IsVolume() bool {
	return t.MinQuantity != nil || t.MaxQuantity != nil
}

// Contains reports whether the tier's range includes qty. Unset bounds
// are open-ended.
func (t Tier) Contains(qty int) bool {
	if t.MinQuantity != nil && qty < *t.MinQuantity {
		return false
	}
	if t.MaxQuantity != nil && qty > *t.MaxQuantity {
		return false
	}
	return true
}

// Resolution is the outcome of a price resolution. Price is nil only
// when Source is NONE.
type Resolution struct {
	Price         *decimal.Decimal `json:"price"`
	Source        Source           `json:"source"`
	MatchedTierID string           `json:"matched_tier_id,omitempty"`
}
