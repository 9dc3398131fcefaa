package services

import (
	"errors"

	"github.com/bitespot/bitespot-api/models"
	"gorm.io/gorm"
)

// SubmitReview records a rating for a product. A second review from the same
// user replaces the first, then the product's average rating is recomputed.
func SubmitReview(db *gorm.DB, userID, productID, rating int, comment string) (*models.Review, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var review models.Review
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	switch {
	case err == nil:
		review.Rating = rating
		review.Comment = comment
		if err := db.Save(&review).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{UserID: userID, ProductID: productID, Rating: rating, Comment: comment}
		if err := db.Create(&review).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := refreshProductRating(db, productID); err != nil {
		return nil, err
	}
	return &review, nil
}

func refreshProductRating(db *gorm.DB, productID int) error {
	var avg float64
	result := db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg)
	if result.Error != nil {
		return result.Error
	}
	return db.Model(&models.Product{}).Where("id = ?", productID).Update("rating", avg).Error
}
