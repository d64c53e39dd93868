package enums

import "fmt"

// OrderStatus tracks an order through its lifecycle. Orders are only ever
// created in SUBMITTED; later transitions are staff actions.
type OrderStatus string

const (
	OrderStatusDraft        OrderStatus = "DRAFT"
	OrderStatusSubmitted    OrderStatus = "SUBMITTED"
	OrderStatusApproved     OrderStatus = "APPROVED"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusShipped      OrderStatus = "SHIPPED"
	OrderStatusCompleted    OrderStatus = "COMPLETED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusSubmitted,
	OrderStatusApproved,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// forward progression; CANCELLED is reachable from any non-terminal state.
var orderStatusSuccessors = map[OrderStatus]OrderStatus{
	OrderStatusDraft:        OrderStatusSubmitted,
	OrderStatusSubmitted:    OrderStatusApproved,
	OrderStatusApproved:     OrderStatusInProduction,
	OrderStatusInProduction: OrderStatusShipped,
	OrderStatusShipped:      OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical order status enum.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step: the single forward successor, or cancellation of a non-terminal order.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderStatusSuccessors[s] == next
}

// ParseOrderStatus converts the raw string to an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
