package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/api/middleware"
	"github.com/kestrelgear/dealerdesk-backend/api/responses"
	"github.com/kestrelgear/dealerdesk-backend/api/validators"
	"github.com/kestrelgear/dealerdesk-backend/internal/catalog"
	pkgerrors "github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
	"github.com/kestrelgear/dealerdesk-backend/pkg/metrics"
)

const maxPriceQuantity = 1_000_000

type effectivePriceResponse struct {
	ProductID     string           `json:"product_id"`
	SKU           string           `json:"sku,omitempty"`
	Name          string           `json:"name,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Quantity      int              `json:"quantity"`
	Price         *decimal.Decimal `json:"price"`
	Source        string           `json:"source"`
	MatchedTierID string           `json:"matched_tier_id,omitempty"`
}

// EffectivePrice resolves the unit price the caller would pay for qty
// units of a product. An unknown product is not an error: it answers
// source NONE with a null price so the storefront can render a
// "pricing unavailable" state.
func EffectivePrice(svc catalog.Service, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productID"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidArgument, "product id is required"))
			return
		}

		qty, err := validators.ParseQueryInt(r, "qty", 1, 1, maxPriceQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.IdentityFromContext(r.Context())

		query := catalog.PriceQuery{
			ProductID: productID,
			TierID:    identity.TierID,
			Quantity:  qty,
		}
		if identity.AccountID != nil {
			query.AccountID = identity.AccountID.String()
		}

		quote, err := svc.EffectivePrice(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderMetrics.IncResolution(string(quote.Resolution.Source))

		responses.WriteSuccess(w, effectivePriceResponse{
			ProductID:     quote.ProductID,
			SKU:           quote.SKU,
			Name:          quote.Name,
			Currency:      quote.Currency,
			Quantity:      quote.Quantity,
			Price:         quote.Resolution.Price,
			Source:        string(quote.Resolution.Source),
			MatchedTierID: quote.Resolution.MatchedTierID,
		})
	}
}
