package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kestrelgear/dealerdesk-backend/pkg/db/models"
	"github.com/kestrelgear/dealerdesk-backend/pkg/enums"
	"github.com/kestrelgear/dealerdesk-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL,
  created_by TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'SUBMITTED',
  currency TEXT NOT NULL DEFAULT 'USD',
  subtotal NUMERIC NOT NULL,
  shipping_address TEXT NOT NULL,
  po_number TEXT,
  notes TEXT,
  terms_accepted INTEGER NOT NULL DEFAULT 0,
  submitted_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  price_source TEXT,
  selected_options TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func newOrderModel(accountID uuid.UUID, submitted time.Time) *models.Order {
	return &models.Order{
		ID:        uuid.New(),
		AccountID: accountID,
		CreatedBy: uuid.New(),
		Status:    enums.OrderStatusSubmitted,
		Currency:  enums.CurrencyUSD,
		Subtotal:  decimal.NewFromInt(250),
		ShippingAddress: types.Address{
			Line1:   "1 Main St",
			City:    "Denver",
			Country: "US",
		},
		TermsAccepted: true,
		SubmittedAt:   submitted,
	}
}

func newLineModels(orderID uuid.UUID, count int) []models.OrderLineItem {
	lines := make([]models.OrderLineItem, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, models.OrderLineItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: uuid.New(),
			SKU:       fmt.Sprintf("SKU-%d", i),
			Name:      fmt.Sprintf("Part %d", i),
			Qty:       i + 1,
			UnitPrice: decimal.NewFromInt(100),
			LineTotal: decimal.NewFromInt(int64(100 * (i + 1))),
		})
	}
	return lines
}

func TestRepositoryCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrderModel(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NoError(t, repo.CreateOrderLineItems(ctx, newLineModels(order.ID, 2)))

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.AccountID, found.AccountID)
	assert.Equal(t, enums.OrderStatusSubmitted, found.Status)
	assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "1 Main St", found.ShippingAddress.Line1)
	require.Len(t, found.Lines, 2)
}

func TestRepositoryFindOrderUnknownIDReturnsNil(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	found, err := repo.FindOrderByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryCommitIsAllOrNothing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrderModel(uuid.New(), time.Now().UTC())
	lines := newLineModels(order.ID, 3)

	err := db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := txRepo.CreateOrderLineItems(ctx, lines); err != nil {
			return err
		}
		return fmt.Errorf("simulated failure after all writes")
	})
	require.Error(t, err)

	found, findErr := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, findErr)
	assert.Nil(t, found, "rolled-back order header must not be visible")

	var lineCount int64
	require.NoError(t, db.Model(&models.OrderLineItem{}).Where("order_id = ?", order.ID).Count(&lineCount).Error)
	assert.Zero(t, lineCount, "rolled-back order lines must not be visible")
}

func TestRepositoryListOrdersByAccount(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	now := time.Now().UTC()

	older := newOrderModel(accountID, now.Add(-time.Hour))
	newer := newOrderModel(accountID, now)
	foreign := newOrderModel(uuid.New(), now)

	require.NoError(t, repo.CreateOrder(ctx, older))
	require.NoError(t, repo.CreateOrder(ctx, newer))
	require.NoError(t, repo.CreateOrder(ctx, foreign))

	list, err := repo.ListOrdersByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "newest order first")
	assert.Equal(t, older.ID, list[1].ID)
}

func TestRepositoryUpdateOrderStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrderModel(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, repo.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusApproved))

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusApproved, found.Status)

	err = repo.UpdateOrderStatus(ctx, uuid.New(), enums.OrderStatusApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
