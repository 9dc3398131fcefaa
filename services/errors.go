package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotOwner          = errors.New("resource does not belong to caller")
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("entry already exists")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// InsufficientStockError aborts an order placement and names the product
// that could not be covered.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
