package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/internal/pricing"
	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
)

// snapshotFromModel flattens the stored price book into the engine's
// cacheable snapshot form.
func snapshotFromModel(book *models.PriceBook) *pricing.PriceBook {
	if book == nil {
		return nil
	}

	snap := &pricing.PriceBook{
		ProductID:   book.ProductID.String(),
		SKU:         book.SKU,
		ProductName: book.ProductName,
		Currency:    string(book.Currency),
		BasePrice:   book.BasePrice,
	}

	if book.PromoPrice != nil {
		snap.Promo = &pricing.Promo{
			Price:     *book.PromoPrice,
			ValidFrom: book.PromoValidFrom,
			ValidTo:   book.PromoValidTo,
		}
	}

	for _, brk := range book.QuantityBreaks {
		snap.QuantityBreaks = append(snap.QuantityBreaks, pricing.QuantityBreak{
			MinQuantity: brk.MinQuantity,
			MaxQuantity: brk.MaxQuantity,
			Price:       brk.Price,
		})
	}

	if len(book.TierPrices) > 0 {
		snap.TierPrices = make(map[string]decimal.Decimal, len(book.TierPrices))
		for _, tp := range book.TierPrices {
			snap.TierPrices[tp.TierID] = tp.Price
		}
	}

	if len(book.AccountOverrides) > 0 {
		snap.AccountOverrides = make(map[string]decimal.Decimal, len(book.AccountOverrides))
		for _, ov := range book.AccountOverrides {
			snap.AccountOverrides[ov.AccountID.String()] = ov.Price
		}
	}

	return snap
}

func tiersFromModels(tiers []models.Tier) []pricing.Tier {
	out := make([]pricing.Tier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, pricing.Tier{
			ID:          t.ID,
			Name:        t.Name,
			MinQuantity: t.MinQuantity,
			MaxQuantity: t.MaxQuantity,
			Priority:    t.Priority,
		})
	}
	return out
}
