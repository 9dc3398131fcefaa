package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bitespot/bitespot-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One named in-memory database per test; shared cache keeps every pooled
	// connection on the same database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.Review{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Code: code, Name: name, Category: "Street Food", Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addCartLine(t *testing.T, db *gorm.DB, userID int, product models.Product, qty int) {
	t.Helper()
	line := models.CartItem{UserID: userID, ProductID: int(product.ID), Quantity: qty}
	require.NoError(t, db.Create(&line).Error)
}

func TestPlaceOrderComputesTotalAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	springRolls := seedProduct(t, db, "AP001", "Crispy Spring Rolls", 50.00, 5)
	rendang := seedProduct(t, db, "MC002", "Beef Rendang Bowl", 120.00, 3)
	addCartLine(t, db, 1, springRolls, 2)
	addCartLine(t, db, 1, rendang, 1)

	order, err := PlaceOrder(db, 1)
	require.NoError(t, err)

	assert.Equal(t, 220.00, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	// Order.TotalPrice must equal the sum of item subtotals.
	var sum float64
	for _, item := range order.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, order.TotalPrice, sum)

	var ap, mc models.Product
	require.NoError(t, db.First(&ap, springRolls.ID).Error)
	require.NoError(t, db.First(&mc, rendang.ID).Error)
	assert.Equal(t, 3, ap.Stock)
	assert.Equal(t, 2, mc.Stock)
	assert.Equal(t, 2, ap.Sold)
	assert.Equal(t, 1, mc.Sold)

	var remaining int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)

	order, err := PlaceOrder(db, 1)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestPlaceOrderInsufficientStockIsAtomic(t *testing.T) {
	db := newTestDB(t)
	tacos := seedProduct(t, db, "SF001", "Loaded Fish Tacos", 85.00, 10)
	bao := seedProduct(t, db, "SF002", "Pork Belly Bao", 75.00, 1)
	addCartLine(t, db, 1, tacos, 2)
	addCartLine(t, db, 1, bao, 3)

	order, err := PlaceOrder(db, 1)
	assert.Nil(t, order)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Pork Belly Bao", stockErr.ProductName)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	// All or nothing: no order, no items, no stock movement, cart intact.
	var orders, items, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&lines)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Equal(t, int64(2), lines)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, tacos.ID).Error)
	assert.Equal(t, 10, fresh.Stock)
	assert.Zero(t, fresh.Sold)
}

func TestPlaceOrderPriceSnapshotIsolation(t *testing.T) {
	db := newTestDB(t)
	tea := seedProduct(t, db, "DR001", "Thai Iced Tea", 35.00, 10)
	addCartLine(t, db, 1, tea, 2)

	order, err := PlaceOrder(db, 1)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 35.00, order.Items[0].Price)

	// Reprice the product after the sale.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", tea.ID).Update("price", 99.00).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, order.Items[0].ID).Error)
	assert.Equal(t, 35.00, item.Price)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, order.ID).Error)
	assert.Equal(t, 70.00, persisted.TotalPrice)
}

func TestPlaceOrderNoOversell(t *testing.T) {
	db := newTestDB(t)
	skewers := seedProduct(t, db, "MC001", "Smoky Chicken Skewers", 95.00, 10)
	addCartLine(t, db, 1, skewers, 6)
	addCartLine(t, db, 2, skewers, 6)

	first, firstErr := PlaceOrder(db, 1)
	second, secondErr := PlaceOrder(db, 2)

	require.NoError(t, firstErr)
	require.NotNil(t, first)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, secondErr, &stockErr)
	assert.Nil(t, second)
	assert.Equal(t, "Smoky Chicken Skewers", stockErr.ProductName)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, skewers.ID).Error)
	assert.Equal(t, 4, fresh.Stock)
	assert.Equal(t, 6, fresh.Sold)

	// The loser's cart is untouched so the user can retry with less.
	var lines int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 2).Count(&lines)
	assert.Equal(t, int64(1), lines)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"pending to delivered", models.OrderStatusPending, models.OrderStatusDelivered, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"pending to completed skips delivery", models.OrderStatusPending, models.OrderStatusCompleted, false},
		{"delivered back to pending", models.OrderStatusDelivered, models.OrderStatusPending, false},
		{"delivered to cancelled", models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{"completed to pending", models.OrderStatusCompleted, models.OrderStatusPending, false},
		{"unknown state", models.OrderStatusPending, "Shipped", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			order := models.Order{UserID: 1, TotalPrice: 10, Status: tc.from}
			require.NoError(t, db.Create(&order).Error)

			updated, err := UpdateOrderStatus(db, 1, int(order.ID), tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateOrderStatusOwnership(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{UserID: 1, TotalPrice: 10, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	_, err := UpdateOrderStatus(db, 2, int(order.ID), models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = UpdateOrderStatus(db, 1, 999, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompletedRequiresReviewingEveryItem(t *testing.T) {
	db := newTestDB(t)
	rolls := seedProduct(t, db, "AP001", "Crispy Spring Rolls", 50.00, 5)
	mango := seedProduct(t, db, "DS001", "Mango Sticky Rice", 60.00, 5)
	addCartLine(t, db, 1, rolls, 1)
	addCartLine(t, db, 1, mango, 1)

	order, err := PlaceOrder(db, 1)
	require.NoError(t, err)

	_, err = UpdateOrderStatus(db, 1, int(order.ID), models.OrderStatusDelivered)
	require.NoError(t, err)

	// One of two items reviewed: not enough.
	_, err = SubmitReview(db, 1, int(rolls.ID), 5, "crunchy")
	require.NoError(t, err)
	_, err = UpdateOrderStatus(db, 1, int(order.ID), models.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = SubmitReview(db, 1, int(mango.ID), 4, "sweet")
	require.NoError(t, err)
	updated, err := UpdateOrderStatus(db, 1, int(order.ID), models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
}

func TestSubmitReviewUpsertsAndRecomputesRating(t *testing.T) {
	db := newTestDB(t)
	soda := seedProduct(t, db, "DR002", "Fresh Lime Soda", 30.00, 5)

	_, err := SubmitReview(db, 1, int(soda.ID), 2, "flat")
	require.NoError(t, err)
	_, err = SubmitReview(db, 2, int(soda.ID), 4, "fizzy")
	require.NoError(t, err)

	var product models.Product
	require.NoError(t, db.First(&product, soda.ID).Error)
	assert.Equal(t, 3.0, product.Rating)

	// A repeat review from user 1 replaces the old one.
	_, err = SubmitReview(db, 1, int(soda.ID), 4, "better this time")
	require.NoError(t, err)

	var reviews int64
	db.Model(&models.Review{}).Where("product_id = ?", soda.ID).Count(&reviews)
	assert.Equal(t, int64(2), reviews)

	require.NoError(t, db.First(&product, soda.ID).Error)
	assert.Equal(t, 4.0, product.Rating)
}
