package catalog

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelgear/dealerdesk-backend/internal/pricing"
	"github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
	"github.com/kestrelgear/dealerdesk-backend/pkg/redis"
)

// PriceQuery carries everything a price lookup needs. Identity fields
// come from the caller's token, never from request parameters.
type PriceQuery struct {
	ProductID string
	AccountID string
	TierID    string
	Quantity  int
}

// PriceQuote is the resolved price plus the product fields the storefront
// renders next to it. Product fields are empty when the book is unknown.
type PriceQuote struct {
	ProductID  string
	SKU        string
	Name       string
	Currency   string
	Quantity   int
	Resolution pricing.Resolution
}

// SnapshotCache is the subset of the cache client the service uses.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service answers effective-price lookups for the storefront.
type Service interface {
	EffectivePrice(ctx context.Context, query PriceQuery) (*PriceQuote, error)
}

type service struct {
	repo  Repository
	cache SnapshotCache
	ttl   time.Duration
	logg  *logger.Logger
	now   func() time.Time
}

// NewService wires the catalog read service. cache may be nil; lookups
// then always hit storage.
func NewService(repo Repository, cache SnapshotCache, ttl time.Duration, logg *logger.Logger) Service {
	if repo == nil {
		panic("catalog: repo is required")
	}
	if logg == nil {
		panic("catalog: logger is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		logg:  logg,
		now:   time.Now,
	}
}

func (s *service) EffectivePrice(ctx context.Context, query PriceQuery) (*PriceQuote, error) {
	if query.Quantity < 1 {
		return nil, errors.New(errors.CodeInvalidArgument, "quantity must be at least 1")
	}
	productID, err := uuid.Parse(query.ProductID)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidArgument, "product id must be a valid uuid")
	}

	book, err := s.loadSnapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.loadTiers(ctx)
	if err != nil {
		return nil, err
	}

	res := pricing.Resolve(book, query.AccountID, query.TierID, query.Quantity, s.now(), tiers)

	quote := &PriceQuote{
		ProductID:  query.ProductID,
		Quantity:   query.Quantity,
		Resolution: res,
	}
	if book != nil {
		quote.SKU = book.SKU
		quote.Name = book.ProductName
		quote.Currency = book.Currency
	}
	return quote, nil
}

// loadSnapshot serves the price book from cache when possible. Cache
// failures degrade to a storage read; an unknown product returns nil.
func (s *service) loadSnapshot(ctx context.Context, productID uuid.UUID) (*pricing.PriceBook, error) {
	key := redis.PriceBookKey(productID.String())

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var snap pricing.PriceBook
			if jsonErr := json.Unmarshal([]byte(raw), &snap); jsonErr == nil {
				return &snap, nil
			}
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "discarding unreadable price book snapshot")
		case !stdErrors.Is(err, redis.ErrCacheMiss):
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "price book cache read failed")
		}
	}

	model, err := s.repo.FindPriceBook(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading price book")
	}
	if model == nil {
		return nil, nil
	}

	snap := snapshotFromModel(model)

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(snap); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, payload, s.ttl); setErr != nil {
				s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "price book cache write failed")
			}
		}
	}

	return snap, nil
}

func (s *service) loadTiers(ctx context.Context) ([]pricing.Tier, error) {
	models, err := s.repo.ListTiers(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading tier catalog")
	}
	return tiersFromModels(models), nil
}
