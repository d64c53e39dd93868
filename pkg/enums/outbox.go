package enums

// OutboxEventType is the canonical event_type for outbox rows.
type OutboxEventType string

const (
	EventOrderSubmitted     OutboxEventType = "order.submitted"
	EventOrderStatusChanged OutboxEventType = "order.status_changed"
)

// OutboxAggregateType identifies the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder OutboxAggregateType = "order"
)
