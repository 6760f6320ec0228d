package controllers

import (
	"strings"

	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAllProducts lists products with pagination, category filter and search
func GetAllProducts(c *gin.Context) {
	utils.LogInfo("GetAllProducts called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{})

	if category := c.Query("category"); category != "" {
		var categories []string
		for _, cat := range strings.Split(category, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
		query = query.Where("category IN ?", categories)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count products", err.Error())
		return
	}

	var products []models.Product
	if err := query.Preload("Seller").
		Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, pagination.Page, pagination.Limit)
}

// GetProductByID returns one product with its seller resolved
func GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Seller").Where("id = ?", productID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{"product": product})
}

// GetProductsBySeller lists a seller's products
func GetProductsBySeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("sellerId"))
	if err != nil {
		utils.BadRequest(c, "Invalid seller ID", nil)
		return
	}

	var products []models.Product
	if err := config.DB.Where("seller_id = ?", sellerID).Order("created_at desc").Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.Success(c, "Products retrieved successfully", gin.H{"products": products})
}

// GetProductsByCategory lists all products in one category
func GetProductsByCategory(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Where("category = ?", c.Param("category")).Order("created_at desc").Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.Success(c, "Products retrieved successfully", gin.H{"products": products})
}

// SearchProducts does a case-insensitive name search
func SearchProducts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))

	var products []models.Product
	if err := config.DB.Where("name ILIKE ?", "%"+term+"%").Order("created_at desc").Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to search products", err.Error())
		return
	}

	utils.Success(c, "Products retrieved successfully", gin.H{"products": products})
}
