package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalorders "github.com/kestrelgear/dealerdesk-backend/internal/orders"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

type submitLineRequest struct {
	ProductID       uuid.UUID         `json:"product_id" validate:"required"`
	SKU             string            `json:"sku" validate:"required"`
	Name            string            `json:"name" validate:"required"`
	Qty             int               `json:"qty" validate:"required,min=1"`
	UnitPrice       decimal.Decimal   `json:"unit_price" validate:"required"`
	PriceSource     *string           `json:"price_source,omitempty"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

type submitAddressRequest struct {
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	Region     string  `json:"region,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country" validate:"required"`
}

type submitOrderRequest struct {
	Lines           []submitLineRequest   `json:"lines" validate:"required,min=1,dive"`
	ShippingAddress submitAddressRequest  `json:"shipping_address" validate:"required"`
	PONumber        *string               `json:"po_number,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	TermsAccepted   bool                  `json:"terms_accepted"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (req submitOrderRequest) toInput() internalorders.SubmitInput {
	lines := make([]internalorders.CartLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, internalorders.CartLine{
			ProductID:       l.ProductID,
			SKU:             l.SKU,
			Name:            l.Name,
			Qty:             l.Qty,
			UnitPrice:       l.UnitPrice,
			PriceSource:     l.PriceSource,
			SelectedOptions: l.SelectedOptions,
		})
	}

	return internalorders.SubmitInput{
		Lines: lines,
		ShippingAddress: types.Address{
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			Region:     req.ShippingAddress.Region,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PONumber:      req.PONumber,
		Notes:         req.Notes,
		TermsAccepted: req.TermsAccepted,
	}
}
