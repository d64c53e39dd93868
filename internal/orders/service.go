package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
	"github.com/kestrelgear/dealerdesk-backend/pkg/metrics"
	"github.com/kestrelgear/dealerdesk-backend/pkg/outbox"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

// Service owns the order lifecycle: the atomic commit of a priced cart
// plus the read and staff-transition paths around it.
type Service interface {
	Submit(ctx context.Context, identity Identity, input SubmitInput) (*SubmitResult, error)
	GetOrder(ctx context.Context, identity Identity, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, identity Identity) ([]models.Order, error)
	UpdateStatus(ctx context.Context, identity Identity, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	events  eventEmitter
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService wires the order service. events and orderMetrics may be nil
// in tests; repo, tx and logg are required.
func NewService(repo Repository, tx txRunner, events eventEmitter, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) Service {
	if repo == nil {
		panic("orders: repo is required")
	}
	if tx == nil {
		panic("orders: tx runner is required")
	}
	if logg == nil {
		panic("orders: logger is required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		events:  events,
		metrics: orderMetrics,
		logg:    logg,
		now:     time.Now,
	}
}

// Submit validates the cart, freezes its client-resolved prices into an
// order and writes header plus lines as a single transaction. Either all
// records exist afterward or none do.
func (s *service) Submit(ctx context.Context, identity Identity, input SubmitInput) (*SubmitResult, error) {
	started := s.now()

	result, err := s.submit(ctx, identity, input)
	s.metrics.ObserveSubmit(submitOutcome(err), s.now().Sub(started))
	return result, err
}

func (s *service) submit(ctx context.Context, identity Identity, input SubmitInput) (*SubmitResult, error) {
	if !identity.IsAuthenticated() {
		return nil, errors.New(errors.CodeUnauthenticated, "caller identity required")
	}
	if identity.AccountID == nil || *identity.AccountID == uuid.Nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "account not configured")
	}
	currency, err := enums.ParseCurrency(identity.Currency)
	if err != nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "account not configured")
	}
	if len(input.Lines) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, "cart must contain at least one line")
	}
	if !input.ShippingAddress.HasRequiredFields() {
		return nil, errors.New(errors.CodeInvalidArgument, "shipping address requires line1, city and country")
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	now := s.now()
	order := buildOrder(identity, *identity.AccountID, currency, input, now)
	lines := buildLineItems(order.ID, input.Lines)
	order.Subtotal = sumLineTotals(lines)

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("writing order header: %w", err)
		}
		if err := txRepo.CreateOrderLineItems(ctx, lines); err != nil {
			return fmt.Errorf("writing order lines: %w", err)
		}
		return s.emitSubmitted(ctx, tx, identity, order, len(lines))
	})
	if txErr != nil {
		s.logg.Error(ctx, "order commit failed", txErr)
		return nil, errors.Wrap(errors.CodeInternal, txErr, "order could not be committed")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"subtotal": order.Subtotal.String(),
		"lines":    len(lines),
	})
	s.logg.Info(logCtx, "order committed")

	return &SubmitResult{OrderID: order.ID, Status: order.Status}, nil
}

// GetOrder returns one order. Dealers only see orders belonging to their
// own account; an order outside that scope reads as not found.
func (s *service) GetOrder(ctx context.Context, identity Identity, orderID uuid.UUID) (*models.Order, error) {
	if !identity.IsAuthenticated() {
		return nil, errors.New(errors.CodeUnauthenticated, "caller identity required")
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading order")
	}
	if order == nil || !canReadOrder(identity, order) {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, identity Identity) ([]models.Order, error) {
	if !identity.IsAuthenticated() {
		return nil, errors.New(errors.CodeUnauthenticated, "caller identity required")
	}
	if identity.AccountID == nil || *identity.AccountID == uuid.Nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "account not configured")
	}

	orders, err := s.repo.ListOrdersByAccount(ctx, *identity.AccountID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}

// UpdateStatus performs a staff lifecycle transition. Only the single
// forward successor or cancellation of a non-terminal order is legal.
func (s *service) UpdateStatus(ctx context.Context, identity Identity, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !identity.IsAuthenticated() {
		return nil, errors.New(errors.CodeUnauthenticated, "caller identity required")
	}
	if identity.Role != enums.ActorRoleStaff {
		return nil, errors.New(errors.CodeForbidden, "status transitions are a staff action")
	}
	if !next.IsValid() {
		return nil, errors.New(errors.CodeInvalidArgument, "unknown order status")
	}

	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading order")
	}
	if order == nil {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, errors.New(errors.CodeConflict,
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, next))
	}

	previous := order.Status
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateOrderStatus(ctx, orderID, next); err != nil {
			return fmt.Errorf("updating order status: %w", err)
		}
		return s.emitStatusChanged(ctx, tx, identity, orderID, previous, next)
	})
	if txErr != nil {
		s.logg.Error(ctx, "order status update failed", txErr)
		return nil, errors.Wrap(errors.CodeInternal, txErr, "order status could not be updated")
	}

	order.Status = next
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": orderID.String(),
		"from":     previous.String(),
		"to":       next.String(),
	})
	s.logg.Info(logCtx, "order status updated")

	return order, nil
}

func (s *service) emitSubmitted(ctx context.Context, tx *gorm.DB, identity Identity, order *models.Order, lineCount int) error {
	if s.events == nil {
		return nil
	}
	return s.events.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderSubmitted,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         actorRef(identity),
		Version:       1,
		OccurredAt:    order.SubmittedAt,
		Data: orderSubmittedEvent{
			OrderID:     order.ID,
			AccountID:   order.AccountID,
			Currency:    string(order.Currency),
			Subtotal:    order.Subtotal.String(),
			LineCount:   lineCount,
			SubmittedAt: order.SubmittedAt,
		},
	})
}

func (s *service) emitStatusChanged(ctx context.Context, tx *gorm.DB, identity Identity, orderID uuid.UUID, from, to enums.OrderStatus) error {
	if s.events == nil {
		return nil
	}
	return s.events.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderStatusChanged,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Actor:         actorRef(identity),
		Version:       1,
		OccurredAt:    s.now(),
		Data: orderStatusChangedEvent{
			OrderID: orderID,
			From:    from.String(),
			To:      to.String(),
		},
	})
}

func actorRef(identity Identity) *outbox.ActorRef {
	return &outbox.ActorRef{
		Subject:   identity.Subject,
		AccountID: identity.AccountID,
		Role:      string(identity.Role),
	}
}

func canReadOrder(identity Identity, order *models.Order) bool {
	if identity.Role == enums.ActorRoleStaff {
		return true
	}
	return identity.AccountID != nil && *identity.AccountID == order.AccountID
}

func validateLines(lines []CartLine) error {
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return errors.New(errors.CodeInvalidArgument,
				fmt.Sprintf("line %d: product id is required", i))
		}
		if line.Qty < 1 {
			return errors.New(errors.CodeInvalidArgument,
				fmt.Sprintf("line %d: quantity must be at least 1", i))
		}
		if line.UnitPrice.IsNegative() {
			return errors.New(errors.CodeInvalidArgument,
				fmt.Sprintf("line %d: unit price cannot be negative", i))
		}
	}
	return nil
}

func buildOrder(identity Identity, accountID uuid.UUID, currency enums.Currency, input SubmitInput, now time.Time) *models.Order {
	return &models.Order{
		ID:              uuid.New(),
		AccountID:       accountID,
		CreatedBy:       identity.Subject,
		Status:          enums.OrderStatusSubmitted,
		Currency:        currency,
		ShippingAddress: input.ShippingAddress,
		PONumber:        input.PONumber,
		Notes:           input.Notes,
		TermsAccepted:   input.TermsAccepted,
		SubmittedAt:     now,
	}
}

func buildLineItems(orderID uuid.UUID, lines []CartLine) []models.OrderLineItem {
	items := make([]models.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Qty))
		items = append(items, models.OrderLineItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       line.ProductID,
			SKU:             line.SKU,
			Name:            line.Name,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.UnitPrice.Mul(qty),
			PriceSource:     line.PriceSource,
			SelectedOptions: types.JSONMap(line.SelectedOptions),
		})
	}
	return items
}

func sumLineTotals(lines []models.OrderLineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	return subtotal
}

func submitOutcome(err error) string {
	if err == nil {
		return "success"
	}
	if typed := errors.As(err); typed != nil {
		switch typed.Code() {
		case errors.CodeUnauthenticated:
			return "unauthenticated"
		case errors.CodeInvalidArgument:
			return "invalid_argument"
		case errors.CodeFailedPrecondition:
			return "failed_precondition"
		}
	}
	return "internal"
}
