package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgear/dealerdesk-backend/internal/pricing"
	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
	"github.com/kestrelgear/dealerdesk-backend/pkg/redis"
	"github.com/rs/zerolog"
)

type stubRepo struct {
	books     map[uuid.UUID]*models.PriceBook
	tiers     []models.Tier
	bookErr   error
	bookCalls int
}

func (s *stubRepo) FindPriceBook(_ context.Context, productID uuid.UUID) (*models.PriceBook, error) {
	s.bookCalls++
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.books[productID], nil
}

func (s *stubRepo) ListTiers(context.Context) ([]models.Tier, error) {
	return s.tiers, nil
}

type stubCache struct {
	data map[string]string
	sets int
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	return "", redis.ErrCacheMiss
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.sets++
	if s.data == nil {
		s.data = map[string]string{}
	}
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEffectivePriceUnknownProductResolvesNone(t *testing.T) {
	repo := &stubRepo{books: map[uuid.UUID]*models.PriceBook{}}
	svc := NewService(repo, nil, time.Minute, testLogger())

	quote, err := svc.EffectivePrice(context.Background(), PriceQuery{
		ProductID: uuid.NewString(),
		AccountID: uuid.NewString(),
		TierID:    "TIER_A",
		Quantity:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, pricing.SourceNone, quote.Resolution.Source)
	assert.Nil(t, quote.Resolution.Price)
	assert.Empty(t, quote.SKU)
}

func TestEffectivePriceRejectsBadInput(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil, time.Minute, testLogger())

	_, err := svc.EffectivePrice(context.Background(), PriceQuery{ProductID: uuid.NewString(), Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.As(err).Code())

	_, err = svc.EffectivePrice(context.Background(), PriceQuery{ProductID: "not-a-uuid", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.As(err).Code())
}

func TestEffectivePriceResolvesFromStorage(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		books: map[uuid.UUID]*models.PriceBook{
			productID: {
				ProductID:   productID,
				SKU:         "SKU-9",
				ProductName: "Crank Arm",
				Currency:    enums.CurrencyUSD,
				BasePrice:   mustDec("500"),
			},
		},
	}
	svc := NewService(repo, nil, time.Minute, testLogger())

	quote, err := svc.EffectivePrice(context.Background(), PriceQuery{
		ProductID: productID.String(),
		AccountID: uuid.NewString(),
		TierID:    "TIER_A",
		Quantity:  1,
	})

	require.NoError(t, err)
	require.NotNil(t, quote.Resolution.Price)
	assert.Equal(t, pricing.SourceBase, quote.Resolution.Source)
	assert.True(t, quote.Resolution.Price.Equal(mustDec("500")))
	assert.Equal(t, "SKU-9", quote.SKU)
	assert.Equal(t, "Crank Arm", quote.Name)
	assert.Equal(t, "USD", quote.Currency)
}

func TestEffectivePriceCachesSnapshot(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		books: map[uuid.UUID]*models.PriceBook{
			productID: {
				ProductID:   productID,
				SKU:         "SKU-1",
				ProductName: "Hub",
				Currency:    enums.CurrencyUSD,
				BasePrice:   mustDec("100"),
			},
		},
	}
	cache := &stubCache{}
	svc := NewService(repo, cache, time.Minute, testLogger())

	_, err := svc.EffectivePrice(context.Background(), PriceQuery{ProductID: productID.String(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.bookCalls)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.EffectivePrice(context.Background(), PriceQuery{ProductID: productID.String(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.bookCalls, "second lookup should be served from cache")
}

func TestEffectivePriceDiscardsCorruptCacheEntry(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		books: map[uuid.UUID]*models.PriceBook{
			productID: {
				ProductID: productID,
				BasePrice: mustDec("100"),
				Currency:  enums.CurrencyUSD,
			},
		},
	}
	cache := &stubCache{data: map[string]string{
		redis.PriceBookKey(productID.String()): "{not json",
	}}
	svc := NewService(repo, cache, time.Minute, testLogger())

	quote, err := svc.EffectivePrice(context.Background(), PriceQuery{ProductID: productID.String(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceBase, quote.Resolution.Source)
	assert.Equal(t, 1, repo.bookCalls)
}

func TestEffectivePriceStorageFailureIsInternal(t *testing.T) {
	repo := &stubRepo{bookErr: fmt.Errorf("connection reset")}
	svc := NewService(repo, nil, time.Minute, testLogger())

	_, err := svc.EffectivePrice(context.Background(), PriceQuery{ProductID: uuid.NewString(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternal, errors.As(err).Code())
}

func TestSnapshotRoundTripsThroughJSON(t *testing.T) {
	productID := uuid.New()
	promoPrice := mustDec("45")
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(48 * time.Hour)
	maxQty := 10

	model := &models.PriceBook{
		ProductID:      productID,
		SKU:            "SKU-7",
		ProductName:    "Derailleur",
		Currency:       enums.CurrencyUSD,
		BasePrice:      mustDec("90"),
		PromoPrice:     &promoPrice,
		PromoValidFrom: &from,
		PromoValidTo:   &to,
		QuantityBreaks: []models.QuantityBreak{
			{ProductID: productID, MinQuantity: 5, MaxQuantity: &maxQty, Price: mustDec("80")},
		},
		TierPrices: []models.TierPrice{
			{ProductID: productID, TierID: "TIER_A", Price: mustDec("85")},
		},
		AccountOverrides: []models.AccountOverride{
			{ProductID: productID, AccountID: uuid.New(), Price: mustDec("70")},
		},
	}

	snap := snapshotFromModel(model)
	payload, err := json.Marshal(snap)
	require.NoError(t, err)

	var restored pricing.PriceBook
	require.NoError(t, json.Unmarshal(payload, &restored))

	assert.Equal(t, snap.ProductID, restored.ProductID)
	require.NotNil(t, restored.Promo)
	assert.True(t, restored.Promo.Price.Equal(promoPrice))
	assert.Equal(t, from, restored.Promo.ValidFrom.UTC())
	require.Len(t, restored.QuantityBreaks, 1)
	assert.Equal(t, 5, restored.QuantityBreaks[0].MinQuantity)
	assert.True(t, restored.TierPrices["TIER_A"].Equal(mustDec("85")))
}
