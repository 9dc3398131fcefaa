package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bitespot/bitespot-api/initializers"
	"github.com/bitespot/bitespot-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type addWishlistInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist returns the caller's wishlist entries.
func GetWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var entries []models.Wishlist
	if result := initializers.DB.Where("user_id = ?", userID).Find(&entries); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"wishlist": entries})
}

// CreateWishlistEntry adds a product to the caller's wishlist. Adding an
// entry that already exists answers 409; the client treats that as benign.
func CreateWishlistEntry(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input addWishlistInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	product, err := findProduct(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate product")
		}
		return
	}

	var existing models.Wishlist
	err = initializers.DB.
		Where("user_id = ? AND product_code = ?", userID, product.Code).
		First(&existing).Error
	if err == nil {
		sendErrorResponse(ctx, http.StatusConflict, "Already in wishlist")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	entry := models.Wishlist{UserID: userID, ProductCode: product.Code}
	if err := initializers.DB.Create(&entry).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"entry": entry})
}

// DeleteWishlistEntry removes an entry by its row id, owner only.
func DeleteWishlistEntry(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	entryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse wishlist entry id")
		return
	}

	var entry models.Wishlist
	if err := initializers.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist entry")
		}
		return
	}
	if entry.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, msgNotOwner)
		return
	}

	if err := initializers.DB.Delete(&entry).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove wishlist entry")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// DeleteWishlistByProduct removes the caller's entry for a product code.
// Deleting an absent entry is a no-op.
func DeleteWishlistByProduct(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	code := ctx.Param("code")
	if err := initializers.DB.
		Where("user_id = ? AND product_code = ?", userID, code).
		Delete(&models.Wishlist{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove wishlist entry")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
