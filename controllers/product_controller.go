package controllers

import (
	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
}

// CreateProduct adds a catalog entry owned by the calling seller
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Name == "" || req.Price <= 0 || req.Category == "" || req.Stock < 0 {
		utils.BadRequest(c, "name, positive price, category and non-negative stock are required", nil)
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		SellerID:    user.ID,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product for seller %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Product created: %s by seller %s", product.ID, user.ID)
	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct edits a product. Sellers may only touch their own listings.
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if user.Role == models.RoleSeller && product.SellerID != user.ID {
		utils.Forbidden(c, "You can only update products you created")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Stock >= 0 {
		product.Stock = req.Stock
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct removes a product. Sellers may only delete their own listings.
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if user.Role == models.RoleSeller && product.SellerID != user.ID {
		utils.Forbidden(c, "You can only delete products you created")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}

	utils.LogInfo("Product deleted: %s", product.ID)
	utils.Success(c, "Product deleted successfully", gin.H{"product": product})
}
