package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

type submitOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type orderLineView struct {
	ProductID       string            `json:"product_id"`
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	Qty             int               `json:"qty"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	LineTotal       decimal.Decimal   `json:"line_total"`
	PriceSource     *string           `json:"price_source,omitempty"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

type orderView struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Status          string          `json:"status"`
	Currency        string          `json:"currency"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingAddress types.Address   `json:"shipping_address"`
	PONumber        *string         `json:"po_number,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	TermsAccepted   bool            `json:"terms_accepted"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	Lines           []orderLineView `json:"lines"`
}

func toOrderView(order *models.Order) orderView {
	view := orderView{
		ID:              order.ID.String(),
		AccountID:       order.AccountID.String(),
		Status:          string(order.Status),
		Currency:        string(order.Currency),
		Subtotal:        order.Subtotal,
		ShippingAddress: order.ShippingAddress,
		PONumber:        order.PONumber,
		Notes:           order.Notes,
		TermsAccepted:   order.TermsAccepted,
		SubmittedAt:     order.SubmittedAt,
		Lines:           make([]orderLineView, 0, len(order.Lines)),
	}

	for _, line := range order.Lines {
		view.Lines = append(view.Lines, orderLineView{
			ProductID:       line.ProductID.String(),
			SKU:             line.SKU,
			Name:            line.Name,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.LineTotal,
			PriceSource:     line.PriceSource,
			SelectedOptions: map[string]string(line.SelectedOptions),
		})
	}

	return view
}

func toOrderViews(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}
	return views
}
