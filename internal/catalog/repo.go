package catalog

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
)

// Repository loads pricing data for the catalog read paths.
type Repository interface {
	FindPriceBook(ctx context.Context, productID uuid.UUID) (*models.PriceBook, error)
	ListTiers(ctx context.Context) ([]models.Tier, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindPriceBook returns the product's price book with all rule
// associations loaded, or nil when the product has no book.
func (r *repository) FindPriceBook(ctx context.Context, productID uuid.UUID) (*models.PriceBook, error) {
	var book models.PriceBook
	err := r.db.WithContext(ctx).
		Preload("QuantityBreaks").
		Preload("TierPrices").
		Preload("AccountOverrides").
		Where("product_id = ?", productID).
		First(&book).Error
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) ListTiers(ctx context.Context) ([]models.Tier, error) {
	var tiers []models.Tier
	if err := r.db.WithContext(ctx).Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}
