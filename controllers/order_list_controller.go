package controllers

import (
	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOrderByID returns one order with its payment and items
func GetOrderByID(c *gin.Context) {
	utils.LogInfo("GetOrderByID called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Payment").Where("id = ?", orderID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.LogError("User %s not authorized to view order %s", user.ID, orderID)
		utils.Forbidden(c, "Not authorized to view this order")
		return
	}

	var items []models.OrderItem
	if err := config.DB.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to load order items", err.Error())
		return
	}

	utils.Success(c, "Order fetched successfully", gin.H{
		"order": order,
		"items": items,
	})
}

// GetMyOrders lists the caller's orders, newest first, items attached
func GetMyOrders(c *gin.Context) {
	utils.LogInfo("GetMyOrders called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", err.Error())
		return
	}
	if total == 0 {
		utils.NotFound(c, "No orders found")
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Payment").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	result := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		var items []models.OrderItem
		if err := config.DB.Preload("Product").Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			utils.InternalServerError(c, "Failed to load order items", err.Error())
			return
		}
		result = append(result, gin.H{
			"order": order,
			"items": items,
		})
	}

	utils.SuccessWithPagination(c, "Orders fetched successfully", result, total, pagination.Page, pagination.Limit)
}
