package models

import "gorm.io/gorm"

// Review holds one rating per (user, product); a repeat submission replaces
// the earlier one.
type Review struct {
	gorm.Model
	UserID    int    `json:"userId" gorm:"index"`
	ProductID int    `json:"productId" gorm:"index"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
