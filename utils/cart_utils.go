package utils

import (
	"github.com/gameonmart/GameOnMart/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartLines loads a user's cart rows with product details resolved,
// using the given handle so callers inside a transaction read their own
// snapshot.
func GetCartLines(db *gorm.DB, userID uuid.UUID) ([]models.Cart, error) {
	var lines []models.Cart
	err := db.Preload("Product").Where("user_id = ?", userID).Order("created_at asc").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// CartSubtotal sums quantity times current unit price over cart lines
func CartSubtotal(lines []models.Cart) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Product.Price * float64(line.Quantity)
	}
	return subtotal
}
