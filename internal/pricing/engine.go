// Package pricing resolves the effective unit price for a product by
// evaluating overlapping pricing mechanisms in a fixed precedence order:
// PROMO, ACCOUNT_OVERRIDE, QUANTITY_BREAK, VOLUME_TIER, TIER_FALLBACK,
// BASE. Resolution is pure: no storage, no clock reads, no errors.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resolve computes the effective unit price for qty units of the product
// described by book, as seen by the given account at the given instant.
// A nil book resolves to NONE with a nil price; every other path yields
// a concrete price. Absence of data degrades to the next rule rather
// than failing.
func Resolve(book *PriceBook, accountID, accountTierID string, qty int, now time.Time, tiers []Tier) Resolution {
	if book == nil {
		return Resolution{Source: SourceNone}
	}

	if book.Promo != nil && promoActive(book.Promo, now) {
		return priced(book.Promo.Price, SourcePromo)
	}

	if override, ok := book.AccountOverrides[accountID]; ok {
		return priced(override, SourceAccountOverride)
	}

	if brk := bestQuantityBreak(book.QuantityBreaks, qty); brk != nil {
		return priced(brk.Price, SourceQuantityBreak)
	}

	if tier := bestVolumeTier(tiers, book.TierPrices, qty); tier != nil {
		res := priced(book.TierPrices[tier.ID], SourceVolumeTier)
		res.MatchedTierID = tier.ID
		return res
	}

	if tierPrice, ok := book.TierPrices[accountTierID]; ok {
		return priced(tierPrice, SourceTierFallback)
	}

	return priced(book.BasePrice, SourceBase)
}

func priced(price decimal.Decimal, source Source) Resolution {
	return Resolution{Price: &price, Source: source}
}

// promoActive checks the promo window with inclusive bounds. A nil
// bound leaves that side of the window open.
func promoActive(p *Promo, now time.Time) bool {
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && now.After(*p.ValidTo) {
		return false
	}
	return true
}

// bestQuantityBreak returns the matching break with the highest
// MinQuantity, so the most specific threshold wins when ranges overlap.
func bestQuantityBreak(breaks []QuantityBreak, qty int) *QuantityBreak {
	var best *QuantityBreak
	for i := range breaks {
		b := &breaks[i]
		if qty < b.MinQuantity {
			continue
		}
		if b.MaxQuantity != nil && qty > *b.MaxQuantity {
			continue
		}
		if best == nil || b.MinQuantity > best.MinQuantity {
			best = b
		}
	}
	return best
}

// bestVolumeTier selects among volume tiers whose range contains qty and
// that carry a price in tierPrices. Candidates that both declare an
// explicit priority compare by ascending priority; otherwise the higher
// MinQuantity wins.
func bestVolumeTier(tiers []Tier, tierPrices map[string]decimal.Decimal, qty int) *Tier {
	if len(tierPrices) == 0 {
		return nil
	}

	var best *Tier
	for i := range tiers {
		t := &tiers[i]
		if !t.IsVolume() || !t.Contains(qty) {
			continue
		}
		if _, ok := tierPrices[t.ID]; !ok {
			continue
		}
		if best == nil || volumeTierLess(t, best) {
			best = t
		}
	}
	return best
}

func volumeTierLess(a, b *Tier) bool {
	if a.Priority != nil && b.Priority != nil {
		return *a.Priority < *b.Priority
	}
	return minQuantityOf(a) > minQuantityOf(b)
}

func minQuantityOf(t *Tier) int {
	if t.MinQuantity == nil {
		return 0
	}
	return *t.MinQuantity
}
