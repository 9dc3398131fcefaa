package models

import "gorm.io/gorm"

// Wishlist is pure set membership keyed by the product's display code.
type Wishlist struct {
	gorm.Model
	UserID      int    `json:"userId" gorm:"index"`
	ProductCode string `json:"productId" gorm:"size:32"`
}
