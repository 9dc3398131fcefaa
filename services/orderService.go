package services

import (
	"errors"

	"github.com/bitespot/bitespot-api/models"
	"gorm.io/gorm"
)

// PlaceOrder turns the user's cart into a persisted order inside a single
// transaction. On any failure nothing is observable: no order, no stock
// change, the cart untouched.
//
// The stock check and decrement happen in one guarded UPDATE
// (WHERE stock >= quantity), so two concurrent placements against the same
// product can never oversell it; the loser rolls back with
// InsufficientStockError.
func PlaceOrder(db *gorm.DB, userID int) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		products := make(map[int]models.Product, len(lines))
		var total float64
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}
			products[line.ProductID] = product
			total += product.Price * float64(line.Quantity)
		}

		order = models.Order{
			UserID:     userID,
			TotalPrice: total,
			Status:     models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			product := products[line.ProductID]
			item := models.OrderItem{
				OrderID:   int(order.ID),
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				Updates(map[string]any{
					"stock": gorm.Expr("stock - ?", line.Quantity),
					"sold":  gorm.Expr("sold + ?", line.Quantity),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Lost the race since the precondition read.
				return &InsufficientStockError{
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// allowedTransitions whitelists forward-only status changes. Cancellation is
// only possible while the order is still Pending.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: {models.OrderStatusCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus moves the caller's order along the status lifecycle.
// Regressive or skipping writes are rejected with ErrInvalidTransition.
// Delivered -> Completed additionally requires the caller to have reviewed
// every product in the order.
func UpdateOrderStatus(db *gorm.DB, userID, orderID int, newStatus string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	if !transitionAllowed(order.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	if newStatus == models.OrderStatusCompleted {
		reviewed, err := allItemsReviewed(db, userID, order.Items)
		if err != nil {
			return nil, err
		}
		if !reviewed {
			return nil, ErrInvalidTransition
		}
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func allItemsReviewed(db *gorm.DB, userID int, items []models.OrderItem) (bool, error) {
	productIDs := make([]int, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var count int64
	result := db.Model(&models.Review{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Distinct("product_id").
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count == int64(len(productIDs)), nil
}
