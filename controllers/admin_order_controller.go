package controllers

import (
	"github.com/gameonmart/GameOnMart/config"
	"github.com/gameonmart/GameOnMart/models"
	"github.com/gameonmart/GameOnMart/utils"
	"github.com/gin-gonic/gin"
)

// AdminListOrders lists all orders, newest first, optionally filtered by status
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Preload("Payment").Preload("User").
		Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Orders fetched successfully", orders, total, pagination.Page, pagination.Limit)
}
