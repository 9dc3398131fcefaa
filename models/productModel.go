package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Catalog categories. Product codes are prefixed with the two-letter
// category code, e.g. "AP001", "MC002".
var Categories = []string{"Appetizers", "Main Course", "Desserts", "Street Food", "Drinks"}

type Product struct {
	gorm.Model
	Code        string         `json:"code" gorm:"uniqueIndex;size:32"`
	Name        string         `json:"name" binding:"required"`
	Category    string         `json:"category" binding:"required,oneof=Appetizers 'Main Course' Desserts 'Street Food' Drinks"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Sold        int            `json:"sold"`
	Rating      float64        `json:"rating"`
	Description string         `json:"description"`
	ImageUrl    string         `json:"imageUrl"`
	Tags        datatypes.JSON `json:"tags"`
}

// CategoryPrefix returns the code prefix for a category ("Main Course" -> "MC").
func CategoryPrefix(category string) string {
	switch category {
	case "Appetizers":
		return "AP"
	case "Main Course":
		return "MC"
	case "Desserts":
		return "DS"
	case "Street Food":
		return "SF"
	case "Drinks":
		return "DR"
	}
	return "PR"
}
