package models

import "gorm.io/gorm"

// Order statuses. Transitions are enforced in services.UpdateOrderStatus:
// Pending -> Delivered -> Completed, with Cancelled allowed from Pending only.
const (
	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Order is the immutable record of a completed checkout. Only Status may
// change after creation.
type Order struct {
	gorm.Model
	UserID     int         `json:"userId"`
	TotalPrice float64     `json:"totalPrice"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the product, quantity and price at purchase time.
// Later catalog price changes never touch it.
type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Product   Product `json:"product"`
}
