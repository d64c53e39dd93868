package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

// Identity is the caller's verified claim set. The commit service treats
// AccountID and Currency as ground truth and never cross-checks them
// against a stored account record.
type Identity struct {
	Subject   uuid.UUID
	AccountID *uuid.UUID
	TierID    string
	Currency  string
	Role      enums.ActorRole
}

// IsAuthenticated reports whether the identity carries a verified subject.
func (i Identity) IsAuthenticated() bool {
	return i.Subject != uuid.Nil
}

// CartLine is one priced line as carried by the client's cart. Unit
// prices arrive already resolved; the commit path does not re-price.
type CartLine struct {
	ProductID       uuid.UUID
	SKU             string
	Name            string
	Qty             int
	UnitPrice       decimal.Decimal
	PriceSource     *string
	SelectedOptions map[string]string
}

// SubmitInput is everything submitOrder takes besides the identity.
type SubmitInput struct {
	Lines           []CartLine
	ShippingAddress types.Address
	PONumber        *string
	Notes           *string
	TermsAccepted   bool
}

// SubmitResult is the successful commit outcome.
type SubmitResult struct {
	OrderID uuid.UUID         `json:"order_id"`
	Status  enums.OrderStatus `json:"status"`
}
