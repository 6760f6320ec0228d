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

type cartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// AddToCart adds a product to the caller's cart, accumulating quantity
// when a line for the product already exists
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var line models.Cart
	err = config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&line).Error
	switch {
	case err == nil:
		newQty := line.Quantity + req.Quantity
		if newQty > product.Stock {
			utils.BadRequest(c, "Requested quantity exceeds available stock", gin.H{"available": product.Stock})
			return
		}
		line.Quantity = newQty
		if err := config.DB.Save(&line).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.Quantity > product.Stock {
			utils.BadRequest(c, "Requested quantity exceeds available stock", gin.H{"available": product.Stock})
			return
		}
		line = models.Cart{
			UserID:    user.ID,
			ProductID: productID,
			Quantity:  req.Quantity,
		}
		if err := config.DB.Create(&line).Error; err != nil {
			utils.InternalServerError(c, "Failed to add to cart", err.Error())
			return
		}
	default:
		utils.InternalServerError(c, "Failed to access cart", err.Error())
		return
	}

	utils.Success(c, "Product added to cart", gin.H{
		"product_id": productID,
		"quantity":   line.Quantity,
	})
}

// GetCart returns the caller's cart lines with per-line totals and
// stock flags, plus the cart subtotal
func GetCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	lines, err := utils.GetCartLines(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch cart", err.Error())
		return
	}

	items := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		items = append(items, gin.H{
			"product_id":   line.ProductID,
			"name":         line.Product.Name,
			"price":        line.Product.Price,
			"quantity":     line.Quantity,
			"item_total":   line.Product.Price * float64(line.Quantity),
			"out_of_stock": line.Product.Stock < line.Quantity,
			"low_stock":    line.Product.Stock > 0 && line.Product.Stock <= 5,
		})
	}

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":    items,
		"subtotal": utils.CartSubtotal(lines),
	})
}

// UpdateCartQuantity sets the quantity of an existing cart line
func UpdateCartQuantity(c *gin.Context) {
	utils.LogInfo("UpdateCartQuantity called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var line models.Cart
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&line).Error; err != nil {
		utils.NotFound(c, "Product not in cart")
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if req.Quantity > product.Stock {
		utils.BadRequest(c, "Requested quantity exceeds available stock", gin.H{"available": product.Stock})
		return
	}

	line.Quantity = req.Quantity
	if err := config.DB.Save(&line).Error; err != nil {
		utils.InternalServerError(c, "Failed to update cart", err.Error())
		return
	}

	utils.Success(c, "Cart updated successfully", gin.H{
		"product_id": productID,
		"quantity":   line.Quantity,
	})
}

// RemoveFromCart deletes a single line from the caller's cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	result := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).Delete(&models.Cart{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to remove from cart", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Product not in cart")
		return
	}

	utils.Success(c, "Product removed from cart", nil)
}

// ClearCart empties the caller's cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}

	utils.Success(c, "Cart cleared successfully", nil)
}
