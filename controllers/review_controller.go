package controllers

import (
	"errors"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// refreshProductRatings recomputes the review aggregates stored on the
// product row
func refreshProductRatings(tx *gorm.DB, productID uuid.UUID) error {
	var stats struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as avg").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"num_of_reviews": stats.Count,
		"ratings":        stats.Avg,
	}).Error
}

// AddOrUpdateReview creates the caller's review of a product, or updates
// it if one already exists
func AddOrUpdateReview(c *gin.Context) {
	utils.LogInfo("AddOrUpdateReview called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.BadRequest(c, "Rating must be between 1 and 5", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	updated := false
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		err := tx.Where("product_id = ? AND user_id = ?", productID, user.ID).First(&review).Error
		switch {
		case err == nil:
			review.Rating = req.Rating
			review.Comment = req.Comment
			updated = true
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				ProductID: productID,
				UserID:    user.ID,
				Rating:    req.Rating,
				Comment:   req.Comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return refreshProductRatings(tx, productID)
	})
	if err != nil {
		utils.LogError("Failed to save review for product %s: %v", productID, err)
		utils.InternalServerError(c, "Failed to save review", err.Error())
		return
	}

	message := "Review added successfully"
	if updated {
		message = "Review updated successfully"
	}
	utils.Success(c, message, nil)
}

// DeleteReview removes the caller's review; admins may remove anyone's
func DeleteReview(c *gin.Context) {
	utils.LogInfo("DeleteReview called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	query := config.DB.Where("product_id = ?", productID)
	if user.Role != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}

	var review models.Review
	if err := query.First(&review).Error; err != nil {
		utils.NotFound(c, "Review not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return refreshProductRatings(tx, productID)
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete review", err.Error())
		return
	}

	utils.Success(c, "Review deleted successfully", nil)
}

// GetProductReviews lists all reviews of a product
func GetProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("User").Where("product_id = ?", productID).Order("created_at desc").Find(&reviews).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	utils.Success(c, "Reviews retrieved successfully", gin.H{"reviews": reviews})
}
