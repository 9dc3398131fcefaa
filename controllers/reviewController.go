package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bitespot/bitespot-api/initializers"
	"github.com/bitespot/bitespot-api/models"
	"github.com/bitespot/bitespot-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type submitReviewInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment"`
}

// SubmitReview records a 1-5 rating with an optional comment.
func SubmitReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input submitReviewInput
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

	review, err := services.SubmitReview(initializers.DB, userID, int(product.ID), input.Rating, input.Comment)
	if err != nil {
		log.Println("Review error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"review": review})
}

// GetProductReviews returns all reviews for a product, newest first.
func GetProductReviews(ctx *gin.Context) {
	product, err := findProduct(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	var reviews []models.Review
	result := initializers.DB.
		Where("product_id = ?", product.ID).
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"reviews": reviews})
}
