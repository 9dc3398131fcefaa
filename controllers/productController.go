package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bitespot/bitespot-api/initializers"
	"github.com/bitespot/bitespot-api/models"
	"github.com/bitespot/bitespot-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// findProduct resolves a path parameter that may be a numeric id or a
// display code like "AP001".
func findProduct(ref string) (models.Product, error) {
	var product models.Product
	if id, err := strconv.Atoi(ref); err == nil {
		return product, initializers.DB.First(&product, id).Error
	}
	return product, initializers.DB.Where("code = ?", ref).First(&product).Error
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if product.Code == "" {
		suffix, err := utils.GenerateCode(3)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to generate product code", err)
			return
		}
		product.Code = models.CategoryPrefix(product.Category) + strings.ToUpper(suffix)
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func GetProducts(ctx *gin.Context) {
	var products []models.Product

	// Add pagination
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := initializers.DB.Model(&models.Product{})

	// Add search by name if provided
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	result := query.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Product{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		countQuery = countQuery.Where("category = ?", category)
	}
	countQuery.Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	product, err := findProduct(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func UpdateProduct(ctx *gin.Context) {
	product, err := findProduct(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	var updates struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		ImageUrl    *string  `json:"imageUrl"`
	}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	fields := map[string]any{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Category != nil {
		fields["category"] = *updates.Category
	}
	if updates.Price != nil {
		fields["price"] = *updates.Price
	}
	if updates.Stock != nil {
		fields["stock"] = *updates.Stock
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.ImageUrl != nil {
		fields["image_url"] = *updates.ImageUrl
	}

	if err := initializers.DB.Model(&product).Updates(fields).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	product, err := findProduct(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	if err := initializers.DB.Delete(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// RestoreProducts resets the catalog to the default menu.
func RestoreProducts(ctx *gin.Context) {
	if err := initializers.RestoreCatalog(initializers.DB); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to restore products", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Products restored to default settings."})
}
