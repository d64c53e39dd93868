package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/outbox"
)

// Repository persists order headers and their line items. WithTx returns
// a repository bound to the given transaction so multi-record writes
// commit or roll back as one unit.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderLineItems(ctx context.Context, lines []models.OrderLineItem) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// txRunner is the atomic write primitive the commit service relies on.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// eventEmitter queues a domain event inside the caller's transaction.
type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}
