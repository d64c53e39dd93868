package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func fullBook(now time.Time) *PriceBook {
	return &PriceBook{
		ProductID:   "prod-1",
		SKU:         "SKU-1",
		ProductName: "Widget",
		Currency:    "USD",
		BasePrice:   dec("100"),
		Promo: &Promo{
			Price:     dec("50"),
			ValidFrom: timePtr(now.Add(-time.Hour)),
			ValidTo:   timePtr(now.Add(time.Hour)),
		},
		QuantityBreaks: []QuantityBreak{
			{MinQuantity: 1, Price: dec("70")},
		},
		TierPrices: map[string]decimal.Decimal{
			"VOL":    dec("80"),
			"TIER_A": dec("90"),
		},
		AccountOverrides: map[string]decimal.Decimal{
			"acct1": dec("60"),
		},
	}
}

func volumeTiers() []Tier {
	return []Tier{
		{ID: "VOL", Name: "Volume", MinQuantity: intPtr(1), Priority: intPtr(1)},
	}
}

func TestResolveNilBook(t *testing.T) {
	res := Resolve(nil, "acct1", "TIER_A", 5, time.Now(), volumeTiers())
	assert.Nil(t, res.Price)
	assert.Equal(t, SourceNone, res.Source)
	assert.Empty(t, res.MatchedTierID)
}

func TestResolvePrecedenceOrder(t *testing.T) {
	now := time.Now()
	tiers := volumeTiers()

	book := fullBook(now)
	res := Resolve(book, "acct1", "TIER_A", 5, now, tiers)
	require.NotNil(t, res.Price)
	assert.Equal(t, SourcePromo, res.Source)
	assert.True(t, res.Price.Equal(dec("50")))

	book.Promo = nil
	res = Resolve(book, "acct1", "TIER_A", 5, now, tiers)
	assert.Equal(t, SourceAccountOverride, res.Source)
	assert.True(t, res.Price.Equal(dec("60")))

	book.AccountOverrides = nil
	res = Resolve(book, "acct1", "TIER_A", 5, now, tiers)
	assert.Equal(t, SourceQuantityBreak, res.Source)
	assert.True(t, res.Price.Equal(dec("70")))

	book.QuantityBreaks = nil
	res = Resolve(book, "acct1", "TIER_A", 5, now, tiers)
	assert.Equal(t, SourceVolumeTier, res.Source)
	assert.Equal(t, "VOL", res.MatchedTierID)
	assert.True(t, res.Price.Equal(dec("80")))

	res = Resolve(book, "acct1", "TIER_A", 5, now, nil)
	assert.Equal(t, SourceTierFallback, res.Source)
	assert.True(t, res.Price.Equal(dec("90")))

	book.TierPrices = nil
	res = Resolve(book, "acct1", "TIER_A", 5, now, nil)
	assert.Equal(t, SourceBase, res.Source)
	assert.True(t, res.Price.Equal(dec("100")))
}

func TestResolvePromoBoundsInclusive(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)

	book := &PriceBook{
		BasePrice: dec("100"),
		Promo:     &Promo{Price: dec("50"), ValidFrom: &t0, ValidTo: &t1},
	}

	cases := []struct {
		name string
		at   time.Time
		want Source
	}{
		{"exactly validFrom", t0, SourcePromo},
		{"exactly validTo", t1, SourcePromo},
		{"1ms before window", t0.Add(-time.Millisecond), SourceBase},
		{"1ms after window", t1.Add(time.Millisecond), SourceBase},
		{"inside window", t0.Add(time.Hour), SourcePromo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(book, "acct1", "TIER_A", 1, tc.at, nil)
			assert.Equal(t, tc.want, res.Source)
		})
	}
}

func TestResolvePromoOpenBounds(t *testing.T) {
	now := time.Now()
	book := &PriceBook{
		BasePrice: dec("100"),
		Promo:     &Promo{Price: dec("40")},
	}

	res := Resolve(book, "acct1", "", 1, now, nil)
	assert.Equal(t, SourcePromo, res.Source)
	assert.True(t, res.Price.Equal(dec("40")))
}

func TestResolveQuantityBreakTieBreak(t *testing.T) {
	book := &PriceBook{
		BasePrice: dec("200"),
		QuantityBreaks: []QuantityBreak{
			{MinQuantity: 1, MaxQuantity: intPtr(10), Price: dec("100")},
			{MinQuantity: 5, Price: dec("90")},
		},
	}

	res := Resolve(book, "acct1", "", 7, time.Now(), nil)
	require.NotNil(t, res.Price)
	assert.Equal(t, SourceQuantityBreak, res.Source)
	assert.True(t, res.Price.Equal(dec("90")), "highest minQuantity wins for overlapping breaks")

	res = Resolve(book, "acct1", "", 3, time.Now(), nil)
	assert.True(t, res.Price.Equal(dec("100")))

	res = Resolve(book, "acct1", "", 100, time.Now(), nil)
	assert.True(t, res.Price.Equal(dec("90")), "open-ended break matches large quantities")
}

func TestResolveQuantityBreakRespectsMaxQuantity(t *testing.T) {
	book := &PriceBook{
		BasePrice: dec("200"),
		QuantityBreaks: []QuantityBreak{
			{MinQuantity: 1, MaxQuantity: intPtr(4), Price: dec("150")},
		},
	}

	res := Resolve(book, "acct1", "", 5, time.Now(), nil)
	assert.Equal(t, SourceBase, res.Source)
}

func TestResolveBaseOnly(t *testing.T) {
	book := &PriceBook{BasePrice: dec("500"), Currency: "USD"}

	res := Resolve(book, "acct1", "TIER_A", 1, time.Now(), []Tier{})
	require.NotNil(t, res.Price)
	assert.Equal(t, SourceBase, res.Source)
	assert.True(t, res.Price.Equal(dec("500")))
}

func TestResolveVolumeTierBeatsNamedTier(t *testing.T) {
	tiers := []Tier{
		{ID: "T1", Name: "Bulk", MinQuantity: intPtr(10), Priority: intPtr(1)},
	}
	book := &PriceBook{
		BasePrice: dec("120"),
		TierPrices: map[string]decimal.Decimal{
			"T1":     dec("80"),
			"TIER_A": dec("95"),
		},
	}

	res := Resolve(book, "acct1", "TIER_A", 12, time.Now(), tiers)
	assert.Equal(t, SourceVolumeTier, res.Source)
	assert.Equal(t, "T1", res.MatchedTierID)
	assert.True(t, res.Price.Equal(dec("80")))

	res = Resolve(book, "acct1", "TIER_A", 3, time.Now(), tiers)
	assert.Equal(t, SourceTierFallback, res.Source)
	assert.Empty(t, res.MatchedTierID)
	assert.True(t, res.Price.Equal(dec("95")))
}

func TestResolveVolumeTierOrdering(t *testing.T) {
	book := &PriceBook{
		BasePrice: dec("100"),
		TierPrices: map[string]decimal.Decimal{
			"A": dec("85"),
			"B": dec("75"),
		},
	}

	t.Run("ascending priority when both set", func(t *testing.T) {
		tiers := []Tier{
			{ID: "A", MinQuantity: intPtr(5), Priority: intPtr(2)},
			{ID: "B", MinQuantity: intPtr(1), Priority: intPtr(1)},
		}
		res := Resolve(book, "acct1", "", 10, time.Now(), tiers)
		assert.Equal(t, "B", res.MatchedTierID)
		assert.True(t, res.Price.Equal(dec("75")))
	})

	t.Run("descending minQuantity without priority", func(t *testing.T) {
		tiers := []Tier{
			{ID: "B", MinQuantity: intPtr(1)},
			{ID: "A", MinQuantity: intPtr(5)},
		}
		res := Resolve(book, "acct1", "", 10, time.Now(), tiers)
		assert.Equal(t, "A", res.MatchedTierID)
		assert.True(t, res.Price.Equal(dec("85")))
	})

	t.Run("skips tiers with no range", func(t *testing.T) {
		tiers := []Tier{
			{ID: "A"},
			{ID: "B", MinQuantity: intPtr(1)},
		}
		res := Resolve(book, "acct1", "", 10, time.Now(), tiers)
		assert.Equal(t, "B", res.MatchedTierID)
	})

	t.Run("skips tiers without a price entry", func(t *testing.T) {
		tiers := []Tier{
			{ID: "UNPRICED", MinQuantity: intPtr(1)},
		}
		res := Resolve(book, "acct1", "", 10, time.Now(), tiers)
		assert.Equal(t, SourceBase, res.Source)
	})
}

func TestResolveIsPure(t *testing.T) {
	now := time.Now()
	book := fullBook(now)
	tiers := volumeTiers()

	first := Resolve(book, "acct1", "TIER_A", 5, now, tiers)
	second := Resolve(book, "acct1", "TIER_A", 5, now, tiers)

	assert.Equal(t, first.Source, second.Source)
	require.NotNil(t, first.Price)
	require.NotNil(t, second.Price)
	assert.True(t, first.Price.Equal(*second.Price))
}
