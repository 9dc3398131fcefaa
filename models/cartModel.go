package models

import "gorm.io/gorm"

// CartItem is one (user, product) line of unpurchased intent. A user has at
// most one line per product; repeated adds accumulate into Quantity.
type CartItem struct {
	gorm.Model
	UserID    int     `json:"userId" gorm:"index"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}
