package orders

import (
	"time"

	"github.com/google/uuid"
)

// orderSubmittedEvent is the outbox payload for a freshly committed order.
type orderSubmittedEvent struct {
	OrderID     uuid.UUID `json:"orderId"`
	AccountID   uuid.UUID `json:"accountId"`
	Currency    string    `json:"currency"`
	Subtotal    string    `json:"subtotal"`
	LineCount   int       `json:"lineCount"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// orderStatusChangedEvent records a staff-driven lifecycle transition.
type orderStatusChangedEvent struct {
	OrderID uuid.UUID `json:"orderId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}
